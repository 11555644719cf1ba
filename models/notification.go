package models

type (
	// Notice is the single human readable message produced by a success or a
	// failure. Text is filled in when the notice is localized.
	Notice struct {
		Kind      NoticeKind             `json:"kind"`
		MessageID string                 `json:"messageId"`
		Data      map[string]interface{} `json:"data,omitempty"`
		Text      string                 `json:"text"`
	}

	// Acknowledgement is what the outside collaborator is told when a
	// workflow completes.
	Acknowledgement struct {
		Form     FormName `json:"form"`
		Subject  string   `json:"subject"`
		Invitees int      `json:"invitees,omitempty"`
	}

	NoticeKind string
)

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// Message ids, resolved by the localizer.
const (
	MessageMissingField      = "MissingField"
	MessageBadFormat         = "BadFormat"
	MessageUnknownField      = "UnknownField"
	MessageEmptyInviteeEmail = "EmptyInviteeEmail"
	MessageDuplicateInvitee  = "DuplicateInvitee"
	MessageInvalidPhone      = "InvalidPhone"
	MessageAccountCreated    = "AccountCreated"
	MessagePageCreated       = "PageCreated"
	MessageLinkSent          = "LinkSent"
)

func NewSuccess(id string, data map[string]interface{}) Notice {
	return Notice{Kind: NoticeSuccess, MessageID: id, Data: data}
}

func NewFailure(id string, data map[string]interface{}) Notice {
	return Notice{Kind: NoticeFailure, MessageID: id, Data: data}
}
