package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ysakata/member-api/internal/application"
	"github.com/ysakata/member-api/internal/domain/entity"
	"github.com/ysakata/member-api/internal/interface/middleware"
	"github.com/ysakata/member-api/pkg/helpers"
	"github.com/ysakata/member-api/pkg/response"
	"github.com/ysakata/member-api/pkg/validation"
)

// MemberHandler serves the unauthenticated member lifecycle plus session
// endpoints: token validation, provisional and full registration, login,
// logout and the session check.
type MemberHandler struct {
	Reg     *application.RegistrationService
	Auth    *application.AuthService
	Tokens  *application.VerificationService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewMemberHandler(reg *application.RegistrationService, auth *application.AuthService, tokens *application.VerificationService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *MemberHandler {
	return &MemberHandler{
		Reg:     reg,
		Auth:    auth,
		Tokens:  tokens,
		Logger:  logger,
		Cookies: helpers.NewCookieManager(cookieDomain, cookieSecure),
	}
}

type validateEmailTokenRequest struct {
	Token string `form:"token" json:"token" binding:"required"`
	Email string `form:"email" json:"email" binding:"required,email"`
}

// ValidateEmailToken checks a registration token from the emailed link
// without consuming it. The front end calls this when the completion page
// loads, before showing the registration form.
func (h *MemberHandler) ValidateEmailToken(c *gin.Context) {
	var req validateEmailTokenRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	email, err := h.Tokens.Validate(c.Request.Context(), req.Token, req.Email, entity.PurposeRegister)
	if err != nil {
		writeTokenError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}

type provisionalRegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *MemberHandler) ProvisionalRegister(c *gin.Context) {
	var req provisionalRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	if err := h.Reg.ProvisionalRegister(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.BadRequest(c, validation.Details("email", "is already registered"))
			return
		}
		h.Logger.WithError(err).Error("provisional register failed")
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		return
	}
	c.Status(http.StatusCreated)
}

type registerRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,pwd"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Nickname             string `json:"nickname" binding:"required,max=50"`
	Gender               int16  `json:"gender" binding:"required,oneof=1 2 3 4"`
	BirthDate            string `json:"birth_date" binding:"omitempty,beforetoday"`
	EnrollmentDate       string `json:"enrollment_date" binding:"required,beforeorequaltoday"`
}

// Register creates the account and its profile. Duplicate addresses caught
// here report as a field error; the storage unique constraint backstops the
// race between the check and the insert.
func (h *MemberHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	taken, err := h.Reg.EmailRegistered(c.Request.Context(), req.Email)
	if err != nil {
		h.Logger.WithError(err).Error("register duplicate check failed")
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		return
	}
	if taken {
		response.BadRequest(c, validation.Details("email", "is already registered"))
		return
	}

	in := application.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	}
	g := entity.Gender(req.Gender)
	in.Gender = &g
	if req.BirthDate != "" {
		d, perr := time.Parse(dateLayout, req.BirthDate)
		if perr != nil {
			response.BadRequest(c, validation.Details("birth_date", "must match date format "+dateLayout))
			return
		}
		in.BirthDate = &d
	}
	enroll, perr := time.Parse(dateLayout, req.EnrollmentDate)
	if perr != nil {
		response.BadRequest(c, validation.Details("enrollment_date", "must match date format "+dateLayout))
		return
	}
	in.EnrollmentDate = enroll

	if err := h.Reg.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Conflict", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		return
	}
	c.Status(http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login responds with a generic field error on any credential failure so the
// endpoint cannot be used to probe which addresses are registered.
func (h *MemberHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	u, sess, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.BadRequest(c, validation.Details("email", "email or password is incorrect"))
			return
		}
		h.Logger.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{"user": userResource(u)})
}

func (h *MemberHandler) Logout(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), pr.UserID); err != nil {
		h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("logout failed")
	}
	h.Cookies.ClearSession(c)
	c.Status(http.StatusNoContent)
}

// CheckAuth returns the authenticated user and profile, confirming the
// session is still live.
func (h *MemberHandler) CheckAuth(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	u, p, err := h.Auth.CurrentUser(c.Request.Context(), pr)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Unauthorized(c)
			return
		}
		h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("auth check failed")
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   userResource(u),
		"member": memberResource(p),
	})
}

// writeTokenError maps verification failures onto the read endpoint's status
// contract: missing or wrong-purpose rows are a 404, expired and already
// used tokens are unprocessable.
func writeTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrTokenNotFound), errors.Is(err, application.ErrStatusMismatch):
		response.NotFound(c, "")
	case errors.Is(err, application.ErrTokenExpired):
		response.Error(c, http.StatusUnprocessableEntity, "Token has expired", nil)
	case errors.Is(err, application.ErrAlreadyApplied):
		response.Error(c, http.StatusUnprocessableEntity, "Token has already been used", nil)
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
	}
}
