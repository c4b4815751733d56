package validation

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Init()
	os.Exit(m.Run())
}

type samplePayload struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	BirthDate            string `json:"birth_date" binding:"omitempty,beforetoday"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p samplePayload
	return c.ShouldBindJSON(&p)
}

func TestToDetailsUsesJSONTagNames(t *testing.T) {
	err := bindSample(t, `{}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "password_confirmation")
	assert.Equal(t, []string{"is required"}, details["email"])
}

func TestToDetailsMessages(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{
			name:    "invalid email",
			body:    `{"email":"nope","password":"password123","password_confirmation":"password123"}`,
			field:   "email",
			message: "must be a valid email",
		},
		{
			name:    "password too short",
			body:    `{"email":"a@example.com","password":"short","password_confirmation":"short"}`,
			field:   "password",
			message: "must be between 8 and 32 characters",
		},
		{
			name:    "confirmation mismatch",
			body:    `{"email":"a@example.com","password":"password123","password_confirmation":"password124"}`,
			field:   "password_confirmation",
			message: "must match password",
		},
		{
			name:    "birth date in the future",
			body:    `{"email":"a@example.com","password":"password123","password_confirmation":"password123","birth_date":"2999-01-01"}`,
			field:   "birth_date",
			message: "must be a date before today",
		},
		{
			name:    "unparseable birth date",
			body:    `{"email":"a@example.com","password":"password123","password_confirmation":"password123","birth_date":"01/02/1990"}`,
			field:   "birth_date",
			message: "must be a date before today",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := bindSample(t, tc.body)
			require.Error(t, err)
			details := ToDetails(err)
			require.Contains(t, details, tc.field)
			assert.Contains(t, details[tc.field], tc.message)
		})
	}
}

func TestToDetailsInvalidJSON(t *testing.T) {
	err := bindSample(t, `{`)
	require.Error(t, err)
	assert.Equal(t, map[string][]string{"payload": {"invalid json"}}, ToDetails(err))
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestDetails(t *testing.T) {
	assert.Equal(t, map[string][]string{"email": {"is already registered"}}, Details("email", "is already registered"))
}
