package models

type (
	// ModalSet holds the open flag of every dialog. The flags are independent.
	ModalSet struct {
		SignupOpen     bool `json:"signupOpen"`
		CreatePageOpen bool `json:"createPageOpen"`
	}

	ModalName string
)

const (
	ModalSignup     ModalName = "signup"
	ModalCreatePage ModalName = "createPage"
)

var Modals = []ModalName{ModalSignup, ModalCreatePage}

func (m ModalName) IsValid() bool {
	return m == ModalSignup || m == ModalCreatePage
}
