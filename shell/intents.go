package shell

import (
	"github.com/tidepool-org/landing/models"
)

type IntentKind string

const (
	//Available intents
	IntentEditField     IntentKind = "editField"
	IntentSubmit        IntentKind = "submit"
	IntentOpenModal     IntentKind = "openModal"
	IntentCloseModal    IntentKind = "closeModal"
	IntentOverlayClick  IntentKind = "overlayClick"
	IntentContentClick  IntentKind = "contentClick"
	IntentAddInvitee    IntentKind = "addInvitee"
	IntentRemoveInvitee IntentKind = "removeInvitee"
	IntentSendLink      IntentKind = "sendLink"
)

// Intent is one user action forwarded by the renderer. Only the fields
// relevant to Kind are read.
type Intent struct {
	Kind  IntentKind       `json:"kind"`
	Form  models.FormName  `json:"form,omitempty"`
	Modal models.ModalName `json:"modal,omitempty"`
	Field models.FieldName `json:"field,omitempty"`
	Value string           `json:"value,omitempty"`
	Email string           `json:"email,omitempty"`
	Role  models.Role      `json:"role,omitempty"`
	Phone string           `json:"phone,omitempty"`
}

func EditField(form models.FormName, name models.FieldName, value string) Intent {
	return Intent{Kind: IntentEditField, Form: form, Field: name, Value: value}
}

func Submit(form models.FormName) Intent {
	return Intent{Kind: IntentSubmit, Form: form}
}

func OpenModal(name models.ModalName) Intent {
	return Intent{Kind: IntentOpenModal, Modal: name}
}

func CloseModal(name models.ModalName) Intent {
	return Intent{Kind: IntentCloseModal, Modal: name}
}

func OverlayClick(name models.ModalName) Intent {
	return Intent{Kind: IntentOverlayClick, Modal: name}
}

func ContentClick(name models.ModalName) Intent {
	return Intent{Kind: IntentContentClick, Modal: name}
}

// AddInvitee adds a user to the page roster. An empty role uses the role
// selected in the roster inputs.
func AddInvitee(email string, role models.Role) Intent {
	return Intent{Kind: IntentAddInvitee, Form: models.FormCreatePage, Email: email, Role: role}
}

func RemoveInvitee(email string) Intent {
	return Intent{Kind: IntentRemoveInvitee, Form: models.FormCreatePage, Email: email}
}

// SendLink sets the phone number and submits it.
func SendLink(phone string) Intent {
	return Intent{Kind: IntentSendLink, Form: models.FormSendLink, Phone: phone}
}
