package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ysakata/member-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func fmtDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func fmtTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func userResource(u *entity.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"role": gin.H{
			"value": int(u.Role),
			"label": u.Role.Label(),
		},
		"suspended_at": fmtTime(u.SuspendedAt),
	}
}

// memberResource returns nil (JSON null) when no profile row exists.
func memberResource(p *entity.MemberProfile) any {
	if p == nil {
		return nil
	}
	var gender any
	if p.Gender != nil {
		gender = gin.H{
			"value": int(*p.Gender),
			"label": p.Gender.Label(),
		}
	}
	return gin.H{
		"id":              p.ID,
		"nickname":        p.Nickname,
		"gender":          gender,
		"birth_date":      fmtDate(p.BirthDate),
		"enrollment_date": p.EnrollmentDate.Format(dateLayout),
	}
}
