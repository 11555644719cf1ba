package shell

import (
	"github.com/tidepool-org/landing/localize"
	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/workflow"
)

type (
	// Snapshot is everything the renderer needs to draw the page.
	// Signup and Page are nil while their dialog is closed.
	Snapshot struct {
		Modals   models.ModalSet `json:"modals"`
		Signup   *SignupView     `json:"signup,omitempty"`
		Page     *PageView       `json:"page,omitempty"`
		SendLink SendLinkView    `json:"sendLink"`
	}

	// SignupView never carries the password back to the renderer.
	SignupView struct {
		ID              string                   `json:"id"`
		FirstName       string                   `json:"firstName"`
		Surname         string                   `json:"surname"`
		Email           string                   `json:"email"`
		HasPassword     bool                     `json:"hasPassword"`
		Day             string                   `json:"day"`
		Month           string                   `json:"month"`
		Year            string                   `json:"year"`
		Gender          models.Gender            `json:"gender"`
		BirthdayOptions workflow.BirthdayOptions `json:"birthdayOptions"`
	}

	PageView struct {
		ID string `json:"id"`
		models.PageDraft
		Roles []models.Role `json:"roles"`
	}

	SendLinkView struct {
		ID            string                `json:"id"`
		Phone         string                `json:"phone"`
		Status        models.SendLinkStatus `json:"status"`
		Message       string                `json:"message,omitempty"`
		CanSubmit     bool                  `json:"canSubmit"`
		InputDisabled bool                  `json:"inputDisabled"`
		ButtonLabel   string                `json:"buttonLabel"`
	}
)

const (
	messageSendButton        = "SendLinkButton"
	messageSendButtonSending = "SendLinkButtonSending"
)

var roles = []models.Role{models.RoleEditor, models.RoleAdmin}

func newSignupView(s *workflow.Signup) *SignupView {
	if s == nil {
		return nil
	}
	draft := s.Draft()
	return &SignupView{
		ID:              s.ID(),
		FirstName:       draft.FirstName,
		Surname:         draft.Surname,
		Email:           draft.Email,
		HasPassword:     draft.Password != "",
		Day:             draft.Day,
		Month:           draft.Month,
		Year:            draft.Year,
		Gender:          draft.Gender,
		BirthdayOptions: s.BirthdayOptions(),
	}
}

func newPageView(p *workflow.PageCreation) *PageView {
	if p == nil {
		return nil
	}
	return &PageView{ID: p.ID(), PageDraft: p.Draft(), Roles: roles}
}

func newSendLinkView(s *workflow.SendLink, l localize.Localizer, locale string) SendLinkView {
	state := s.State()
	view := SendLinkView{
		ID:            s.ID(),
		Phone:         state.Phone,
		Status:        state.Status,
		CanSubmit:     s.CanSubmit(),
		InputDisabled: s.InputDisabled(),
	}
	if state.ShowsMessage() {
		view.Message, _ = l.Localize(state.Message, locale, nil)
	}
	label := messageSendButton
	if state.Status == models.SendLinkSending {
		label = messageSendButtonSending
	}
	view.ButtonLabel, _ = l.Localize(label, locale, nil)
	return view
}
