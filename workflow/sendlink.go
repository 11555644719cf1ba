package workflow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/timer"
	"github.com/tidepool-org/landing/validate"
)

// SendLinkDelays are the waits of the send-link state machine.
type SendLinkDelays struct {
	Delivery   time.Duration
	ErrorReset time.Duration
	SentReset  time.Duration
}

// NewSendLinkDelays derives the delays from one time unit: delivery takes
// 1.5 units, an error clears after 3 and a confirmation after 4.
func NewSendLinkDelays(unit time.Duration) SendLinkDelays {
	return SendLinkDelays{
		Delivery:   unit * 3 / 2,
		ErrorReset: 3 * unit,
		SentReset:  4 * unit,
	}
}

// SendLink drives the "send app link" control:
//
//	Idle --submit, bad phone--> Error --3 units--> Idle
//	Idle --submit, good phone--> Sending --1.5 units--> Sent --4 units--> Idle
//
// Submitting from Sent or Error behaves like submitting from Idle and
// supersedes the pending reset. At most one timer is pending at any time.
type SendLink struct {
	id        string
	env       Env
	state     models.SendLinkState
	timer     *timer.StatusTimer
	delays    SendLinkDelays
	onChange  func()
	logger    *zap.SugaredLogger
	unmounted bool
}

// NewSendLink starts in Idle. onChange is called after every transition
// made by a timer, so the host can re-render.
func NewSendLink(env Env, delays SendLinkDelays, onChange func()) *SendLink {
	env = env.withDefaults()
	id := newID()
	return &SendLink{
		id:       id,
		env:      env,
		state:    models.SendLinkState{Status: models.SendLinkIdle},
		timer:    timer.New(env.Clock, env.Post),
		delays:   delays,
		onChange: onChange,
		logger:   env.Logger.With(zap.String("workflow", "sendLink"), zap.String("id", id)),
	}
}

func (s *SendLink) ID() string {
	return s.id
}

func (s *SendLink) State() models.SendLinkState {
	return s.state
}

// CanSubmit reports whether the send button is enabled.
func (s *SendLink) CanSubmit() bool {
	return !s.unmounted && s.state.CanSubmit()
}

// InputDisabled reports whether the phone input is disabled.
func (s *SendLink) InputDisabled() bool {
	return s.unmounted || s.state.Status == models.SendLinkSending
}

// SetPhone edits the phone input, which is disabled while sending.
func (s *SendLink) SetPhone(phone string) error {
	if s.unmounted {
		return models.ErrUnmounted
	}
	if s.state.Status == models.SendLinkSending {
		return models.ErrSendInProgress
	}
	s.state.Phone = phone
	return nil
}

// Submit validates the phone and either starts sending or reports the
// invalid number. The Sending guard holds even when the button is bypassed.
func (s *SendLink) Submit(ctx context.Context) error {
	if s.unmounted {
		return models.ErrUnmounted
	}
	if s.state.Status == models.SendLinkSending {
		return models.ErrSendInProgress
	}

	phone := models.FormField{
		Name:     models.FieldPhone,
		Value:    s.state.Phone,
		Required: true,
		Format:   models.FormatPhone,
	}
	if err := validate.Field(phone); err != nil {
		s.state.Status = models.SendLinkError
		s.state.Message = models.MessageInvalidPhone
		s.timer.Schedule(s.delays.ErrorReset, s.reset)
		s.logger.Debugw("invalid phone", zap.Error(err))
		return models.ErrInvalidPhone
	}

	s.state.Status = models.SendLinkSending
	s.state.Message = ""
	s.timer.Schedule(s.delays.Delivery, s.delivered)
	s.logger.Debug("sending link")
	return nil
}

// Send sets the phone and submits it.
func (s *SendLink) Send(ctx context.Context, phone string) error {
	if err := s.SetPhone(phone); err != nil {
		return err
	}
	return s.Submit(ctx)
}

// Unmount cancels the pending timer. No transition happens afterwards.
func (s *SendLink) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.timer.Close()
	s.logger.Debugw("unmounted", "status", string(s.state.Status))
}

func (s *SendLink) Unmounted() bool {
	return s.unmounted
}

// PendingTimer reports whether a delayed transition is scheduled.
func (s *SendLink) PendingTimer() bool {
	return s.timer.Pending()
}

func (s *SendLink) delivered() {
	if s.unmounted || s.state.Status != models.SendLinkSending {
		return
	}
	phone := s.state.Phone
	s.state.Status = models.SendLinkSent
	s.state.Message = models.MessageLinkSent
	s.state.Phone = ""
	s.timer.Schedule(s.delays.SentReset, s.reset)
	s.logger.Info("link sent")

	notify(context.Background(), s.env.Notifier, s.logger, models.Acknowledgement{
		Form:    models.FormSendLink,
		Subject: phone,
	})
	s.changed()
}

func (s *SendLink) reset() {
	if s.unmounted {
		return
	}
	s.state.Status = models.SendLinkIdle
	s.state.Message = ""
	s.changed()
}

func (s *SendLink) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
