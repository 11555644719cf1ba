package models

type (
	// SendLinkState is everything the send-link control renders.
	//
	// Message holds a message id; it is localized when a snapshot is rendered.
	SendLinkState struct {
		Phone   string         `json:"phone"`
		Status  SendLinkStatus `json:"status"`
		Message string         `json:"message"`
	}

	SendLinkStatus string
)

const (
	//Available statuses
	SendLinkIdle    SendLinkStatus = "idle"
	SendLinkSending SendLinkStatus = "sending"
	SendLinkSent    SendLinkStatus = "sent"
	SendLinkError   SendLinkStatus = "error"
)

// CanSubmit reports whether the send button is enabled.
func (s SendLinkState) CanSubmit() bool {
	return s.Status != SendLinkSending && s.Phone != ""
}

// ShowsMessage reports whether the message is visible.
func (s SendLinkState) ShowsMessage() bool {
	return (s.Status == SendLinkSent || s.Status == SendLinkError) && s.Message != ""
}
