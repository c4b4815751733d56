package mailer

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationURLEncodesParams(t *testing.T) {
	link := VerificationURL("http://front.test/guest/register", "abc", "a+b@example.com")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/guest/register", u.Path)
	assert.Equal(t, "abc", u.Query().Get("token"))
	assert.Equal(t, "a+b@example.com", u.Query().Get("email"))
}

func TestNewRegisterEmailJob(t *testing.T) {
	job := NewRegisterEmailJob("a@example.com", "tok", "http://front.test/guest/register")

	assert.Equal(t, "a@example.com", job.To)
	assert.Contains(t, job.Subject, "本登録")
	assert.True(t, strings.Contains(job.Text, "tok"))
	assert.True(t, strings.Contains(job.Text, "http://front.test/guest/register"))
	assert.Contains(t, job.Text, "1時間")
}

func TestNewUpdateEmailJob(t *testing.T) {
	job := NewUpdateEmailJob("new@example.com", "tok", "nick", "http://front.test/update")

	assert.Equal(t, "new@example.com", job.To)
	assert.Contains(t, job.Subject, "メールアドレス変更")
	assert.Contains(t, job.Text, "nick様")
	assert.True(t, strings.Contains(job.Text, "tok"))
}
