package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// ValidationError reports the first field of a form that did not pass.
	ValidationError struct {
		Reason ValidationReason
		Field  FieldName
	}

	// RosterError reports a rejected invitee addition.
	RosterError struct {
		Reason RosterReason
		Email  string
	}

	// SendLinkFailure reports a rejected send-link submission.
	SendLinkFailure struct {
		Reason SendLinkReason
	}

	ValidationReason string
	RosterReason     string
	SendLinkReason   string
)

const (
	ReasonMissingField ValidationReason = "missing_field"
	ReasonBadFormat    ValidationReason = "bad_format"
	ReasonUnknownField ValidationReason = "unknown_field"

	ReasonEmptyEmail RosterReason = "empty_email"
	ReasonDuplicate  RosterReason = "duplicate"

	ReasonInvalidPhone SendLinkReason = "invalid_phone"
)

var (
	ErrSendInProgress = errors.New("a link is already being sent")
	ErrUnmounted      = errors.New("workflow has been unmounted")
	ErrModalClosed    = errors.New("modal is not open")
	ErrUnknownModal   = errors.New("unknown modal")
	ErrUnknownForm    = errors.New("unknown form")
	ErrLoopStopped    = errors.New("event loop stopped")

	ErrInvalidPhone = &SendLinkFailure{Reason: ReasonInvalidPhone}
)

func NewMissingFieldError(field FieldName) *ValidationError {
	return &ValidationError{Reason: ReasonMissingField, Field: field}
}

func NewBadFormatError(field FieldName) *ValidationError {
	return &ValidationError{Reason: ReasonBadFormat, Field: field}
}

func NewUnknownFieldError(field FieldName) *ValidationError {
	return &ValidationError{Reason: ReasonUnknownField, Field: field}
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("field %q is required", e.Field)
	case ReasonBadFormat:
		return fmt.Sprintf("field %q is not valid", e.Field)
	default:
		return fmt.Sprintf("unknown field %q", e.Field)
	}
}

func (e *ValidationError) MessageID() string {
	switch e.Reason {
	case ReasonMissingField:
		return MessageMissingField
	case ReasonBadFormat:
		return MessageBadFormat
	default:
		return MessageUnknownField
	}
}

func NewEmptyEmailError() *RosterError {
	return &RosterError{Reason: ReasonEmptyEmail}
}

func NewDuplicateError(email string) *RosterError {
	return &RosterError{Reason: ReasonDuplicate, Email: email}
}

func (e *RosterError) Error() string {
	if e.Reason == ReasonDuplicate {
		return fmt.Sprintf("invitee %q has already been added", e.Email)
	}
	return "invitee email is empty"
}

func (e *RosterError) MessageID() string {
	if e.Reason == ReasonDuplicate {
		return MessageDuplicateInvitee
	}
	return MessageEmptyInviteeEmail
}

func (e *SendLinkFailure) Error() string {
	return "invalid phone number"
}

func (e *SendLinkFailure) MessageID() string {
	return MessageInvalidPhone
}

// NoticeFor converts a domain error into the failure notice shown to the user.
// It returns false for errors that carry no user-facing message.
func NoticeFor(err error) (Notice, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewFailure(verr.MessageID(), map[string]interface{}{"Field": string(verr.Field)}), true
	}
	var rerr *RosterError
	if errors.As(err, &rerr) {
		return NewFailure(rerr.MessageID(), map[string]interface{}{"Email": rerr.Email}), true
	}
	var serr *SendLinkFailure
	if errors.As(err, &serr) {
		return NewFailure(serr.MessageID(), nil), true
	}
	return Notice{}, false
}
