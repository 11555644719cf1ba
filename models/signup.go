package models

import (
	"strconv"
	"time"
)

type (
	// SignupDraft is the in-progress account creation form.
	SignupDraft struct {
		FirstName string `json:"firstName"`
		Surname   string `json:"surname"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Day       string `json:"day"`
		Month     string `json:"month"`
		Year      string `json:"year"`
		Gender    Gender `json:"gender"`
	}

	Gender string
)

const (
	GenderUnset  Gender = ""
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderCustom Gender = "custom"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderCustom:
		return true
	}
	return false
}

// NewSignupDraft returns an empty draft whose birthday defaults to now.
func NewSignupDraft(now time.Time) SignupDraft {
	return SignupDraft{
		Day:   strconv.Itoa(now.Day()),
		Month: strconv.Itoa(int(now.Month())),
		Year:  strconv.Itoa(now.Year()),
	}
}

// Fields lists the draft in form order, with the rules applied on submit.
func (d SignupDraft) Fields() []FormField {
	return []FormField{
		{Name: FieldFirstName, Value: d.FirstName, Required: true},
		{Name: FieldSurname, Value: d.Surname, Required: true},
		{Name: FieldEmail, Value: d.Email, Required: true, Format: FormatEmail},
		{Name: FieldPassword, Value: d.Password, Required: true},
		{Name: FieldDay, Value: d.Day},
		{Name: FieldMonth, Value: d.Month},
		{Name: FieldYear, Value: d.Year},
		{Name: FieldGender, Value: string(d.Gender), Required: true},
	}
}

// Set assigns a single field by name.
func (d *SignupDraft) Set(name FieldName, value string) error {
	switch name {
	case FieldFirstName:
		d.FirstName = value
	case FieldSurname:
		d.Surname = value
	case FieldEmail:
		d.Email = value
	case FieldPassword:
		d.Password = value
	case FieldDay:
		d.Day = value
	case FieldMonth:
		d.Month = value
	case FieldYear:
		d.Year = value
	case FieldGender:
		g := Gender(value)
		if g != GenderUnset && !g.IsValid() {
			return NewBadFormatError(name)
		}
		d.Gender = g
	default:
		return NewUnknownFieldError(name)
	}
	return nil
}
