package models

type (
	// Invitee is a user invited to help manage a page.
	Invitee struct {
		Email string `json:"email"`
		Role  Role   `json:"role"`
	}

	// PageDraft is the in-progress page creation form.
	//
	// InviteeEmail and InviteeRole back the roster's own inputs and are not
	// part of the submitted page.
	PageDraft struct {
		PageName     string    `json:"pageName"`
		Category     string    `json:"category"`
		Invitees     []Invitee `json:"invitees"`
		InviteeEmail string    `json:"inviteeEmail"`
		InviteeRole  Role      `json:"inviteeRole"`
	}

	Role string
)

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor
}

func NewPageDraft() PageDraft {
	return PageDraft{
		Invitees:    []Invitee{},
		InviteeRole: RoleEditor,
	}
}

// Fields lists the page fields checked on submit. The roster is never part of it.
func (d PageDraft) Fields() []FormField {
	return []FormField{
		{Name: FieldPageName, Value: d.PageName, Required: true},
		{Name: FieldCategory, Value: d.Category, Required: true},
	}
}

// Set assigns a single field by name.
func (d *PageDraft) Set(name FieldName, value string) error {
	switch name {
	case FieldPageName:
		d.PageName = value
	case FieldCategory:
		d.Category = value
	case FieldInviteeEmail:
		d.InviteeEmail = value
	case FieldInviteeRole:
		r := Role(value)
		if !r.IsValid() {
			return NewBadFormatError(name)
		}
		d.InviteeRole = r
	default:
		return NewUnknownFieldError(name)
	}
	return nil
}
