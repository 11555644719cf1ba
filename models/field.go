package models

type (
	// FormField is a single named input of a form, as handed to the validator.
	FormField struct {
		Name     FieldName
		Value    string
		Required bool
		Format   FormatRule
	}

	//Enum type's
	FieldName  string
	FormatRule string
	FormName   string
)

const (
	//Available format rules
	FormatNone  FormatRule = ""
	FormatEmail FormatRule = "email"
	FormatPhone FormatRule = "phone"

	//Available forms
	FormSignup     FormName = "signup"
	FormCreatePage FormName = "createPage"
	FormSendLink   FormName = "sendLink"

	//Signup fields
	FieldFirstName FieldName = "firstName"
	FieldSurname   FieldName = "surname"
	FieldEmail     FieldName = "email"
	FieldPassword  FieldName = "password"
	FieldDay       FieldName = "day"
	FieldMonth     FieldName = "month"
	FieldYear      FieldName = "year"
	FieldGender    FieldName = "gender"

	//Page creation fields
	FieldPageName     FieldName = "pageName"
	FieldCategory     FieldName = "category"
	FieldInviteeEmail FieldName = "inviteeEmail"
	FieldInviteeRole  FieldName = "inviteeRole"

	//Send link fields
	FieldPhone FieldName = "phone"
)

func (f FormName) IsValid() bool {
	switch f {
	case FormSignup, FormCreatePage, FormSendLink:
		return true
	}
	return false
}
