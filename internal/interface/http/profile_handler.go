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
	"github.com/ysakata/member-api/pkg/response"
	"github.com/ysakata/member-api/pkg/validation"
)

// ProfileHandler serves the authenticated self-service mutations.
type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type sendUpdateEmailTokenRequest struct {
	CurrentEmail         string `json:"current_email" binding:"required,email"`
	NewEmail             string `json:"new_email" binding:"required,email"`
	NewEmailConfirmation string `json:"new_email_confirmation" binding:"required,eqfield=NewEmail"`
}

// SendUpdateEmailToken issues an update-email token and mails it to the new
// address.
func (h *ProfileHandler) SendUpdateEmailToken(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req sendUpdateEmailTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	err := h.Svc.SendUpdateEmailToken(c.Request.Context(), pr, req.CurrentEmail, req.NewEmail)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailMismatch):
			response.BadRequest(c, validation.Details("current_email", "does not match the registered email"))
		case errors.Is(err, application.ErrEmailTaken):
			response.BadRequest(c, validation.Details("new_email", "is already registered"))
		case errors.Is(err, application.ErrUserNotFound):
			response.Unauthorized(c)
		default:
			h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("send update email token failed")
			c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		}
		return
	}
	c.Status(http.StatusCreated)
}

type updateEmailRequest struct {
	Token string `json:"token" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateEmail consumes the emailed token and swaps the account address. A
// token that was already consumed, including by a concurrent submit of the
// same request, conflicts rather than reapplying.
func (h *ProfileHandler) UpdateEmail(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	err := h.Svc.UpdateEmail(c.Request.Context(), pr, req.Token, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTokenNotFound), errors.Is(err, application.ErrStatusMismatch):
			response.NotFound(c, "")
		case errors.Is(err, application.ErrTokenExpired):
			response.Error(c, http.StatusUnprocessableEntity, "Token has expired", nil)
		case errors.Is(err, application.ErrAlreadyApplied):
			response.Error(c, http.StatusConflict, "Token has already been used", nil)
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusConflict, "Conflict", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Unauthorized(c)
		default:
			h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("update email failed")
			c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

type updatePasswordRequest struct {
	CurrentPassword         string `json:"current_password" binding:"required"`
	NewPassword             string `json:"new_password" binding:"required,pwd"`
	NewPasswordConfirmation string `json:"new_password_confirmation" binding:"required,eqfield=NewPassword"`
}

func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	err := h.Svc.UpdatePassword(c.Request.Context(), pr, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCurrentPasswordMismatch):
			response.Error(c, http.StatusUnprocessableEntity, "Unprocessable Entity",
				validation.Details("current_password", "is incorrect"))
		case errors.Is(err, application.ErrUserNotFound):
			response.Unauthorized(c)
		default:
			h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("update password failed")
			c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

type updateProfileRequest struct {
	Nickname  string `json:"nickname" binding:"required,max=50"`
	Gender    *int16 `json:"gender" binding:"omitempty,oneof=1 2 3 4"`
	BirthDate string `json:"birth_date" binding:"omitempty,beforetoday"`
}

// UpdateProfile overwrites the mutable profile fields and returns the result.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validation.ToDetails(err))
		return
	}

	in := application.UpdateProfileInput{Nickname: req.Nickname}
	if req.Gender != nil {
		g := entity.Gender(*req.Gender)
		in.Gender = &g
	}
	if req.BirthDate != "" {
		d, perr := time.Parse(dateLayout, req.BirthDate)
		if perr != nil {
			response.BadRequest(c, validation.Details("birth_date", "must match date format "+dateLayout))
			return
		}
		in.BirthDate = &d
	}

	p, err := h.Svc.UpdateProfile(c.Request.Context(), pr, in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProfileNotFound):
			response.NotFound(c, "")
		default:
			h.Logger.WithError(err).WithField("user_id", pr.UserID).Error("update profile failed")
			c.JSON(http.StatusInternalServerError, response.ErrorBody{Message: "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": memberResource(p)})
}
