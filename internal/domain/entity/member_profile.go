package entity

import "time"

// MemberProfile is 1:1 with User and shares its lifetime. It is created in
// the same transaction as the user row; a user without a profile must never
// be observable.
type MemberProfile struct {
	ID             int64
	UserID         int64
	Nickname       string
	Gender         *Gender
	BirthDate      *time.Time
	EnrollmentDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Gender int16

const (
	GenderMale Gender = iota + 1
	GenderFemale
	GenderOther
	GenderPreferNotToSay
)

// Genders lists all selectable values in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}
}

// Label returns the display string for the gender.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "男性"
	case GenderFemale:
		return "女性"
	case GenderOther:
		return "その他"
	case GenderPreferNotToSay:
		return "回答しない"
	default:
		return ""
	}
}

func (g Gender) Valid() bool {
	return g >= GenderMale && g <= GenderPreferNotToSay
}
