// Package shell composes the page: the dialogs, the workflow mounted in
// each of them and the always visible send-link control.
//
// Intents and timer callbacks all run on one events.Loop. The Shell itself
// holds no lock; its methods hand work to the loop and wait for it.
package shell

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tidepool-org/landing/events"
	"github.com/tidepool-org/landing/localize"
	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/workflow"
)

var ErrUnknownIntent = errors.New("unknown intent")

// Outcome is the result of one intent. Notice is set when the intent
// succeeded or failed in a way the user must be told about.
type Outcome struct {
	Notice   *models.Notice `json:"notice,omitempty"`
	Snapshot Snapshot       `json:"snapshot"`
}

type Config struct {
	Delays workflow.SendLinkDelays
	Locale string
}

type Shell struct {
	loop      *events.Loop
	env       workflow.Env
	localizer localize.Localizer
	config    Config
	logger    *zap.SugaredLogger

	modals      *workflow.ModalController
	signup      *workflow.Signup
	page        *workflow.PageCreation
	sendLink    *workflow.SendLink
	subscribers map[*subscriber]struct{}
	closed      bool
}

type subscriber struct {
	ch     chan Snapshot
	locale string
}

// New mounts the send-link control and prepares both dialogs, closed.
// Timer callbacks of every workflow are posted to loop.
func New(loop *events.Loop, env workflow.Env, localizer localize.Localizer, config Config) *Shell {
	if env.Logger == nil {
		env.Logger = zap.NewNop().Sugar()
	}
	env.Post = loop.Poster
	if config.Locale == "" {
		config.Locale = localize.DefaultLocale
	}
	s := &Shell{
		loop:        loop,
		env:         env,
		localizer:   localizer,
		config:      config,
		logger:      env.Logger.Named("shell"),
		modals:      workflow.NewModalController(env.Logger),
		subscribers: map[*subscriber]struct{}{},
	}

	s.modals.OnOpen(models.ModalSignup, func() {
		s.signup = workflow.NewSignup(s.env, s.closer(models.ModalSignup))
	})
	s.modals.OnClose(models.ModalSignup, func() {
		s.signup.Unmount()
		s.signup = nil
	})
	s.modals.OnOpen(models.ModalCreatePage, func() {
		s.page = workflow.NewPageCreation(s.env, s.closer(models.ModalCreatePage))
	})
	s.modals.OnClose(models.ModalCreatePage, func() {
		s.page.Unmount()
		s.page = nil
	})
	s.sendLink = workflow.NewSendLink(s.env, config.Delays, s.publish)
	return s
}

func (s *Shell) closer(name models.ModalName) func() {
	return func() {
		if err := s.modals.Close(name); err != nil {
			s.logger.Errorw("closing modal after submit", "modal", string(name), zap.Error(err))
		}
	}
}

// Dispatch applies intent and returns the resulting snapshot rendered in
// locale. Domain failures are returned as the error and described once,
// either by the outcome's notice or, for send-link failures, by the
// send-link message in the snapshot.
func (s *Shell) Dispatch(ctx context.Context, intent Intent, locale string) (Outcome, error) {
	locale = s.locale(locale)
	var (
		outcome Outcome
		err     error
	)
	if doErr := s.loop.Do(ctx, func() {
		var notice *models.Notice
		notice, err = s.apply(ctx, intent)
		if err != nil {
			s.logger.Debugw("intent rejected", "kind", string(intent.Kind), zap.Error(err))
			if n, ok := models.NoticeFor(err); ok && !shownInSendLink(err) {
				notice = &n
			}
		}
		if notice != nil {
			n := localize.Notice(s.localizer, *notice, locale)
			outcome.Notice = &n
		}
		outcome.Snapshot = s.render(locale)
		s.publish()
	}); doErr != nil {
		return Outcome{}, doErr
	}
	return outcome, err
}

func shownInSendLink(err error) bool {
	var failure *models.SendLinkFailure
	return errors.As(err, &failure)
}

func (s *Shell) apply(ctx context.Context, intent Intent) (*models.Notice, error) {
	if s.closed {
		return nil, models.ErrUnmounted
	}
	switch intent.Kind {
	case IntentOpenModal:
		return nil, s.modals.Open(intent.Modal)
	case IntentCloseModal:
		return nil, s.modals.Close(intent.Modal)
	case IntentOverlayClick:
		return nil, s.modals.OverlayClick(intent.Modal)
	case IntentContentClick:
		return nil, s.modals.ContentClick(intent.Modal)
	case IntentEditField:
		return nil, s.editField(intent)
	case IntentSubmit:
		return s.submit(ctx, intent.Form)
	case IntentAddInvitee:
		if s.page == nil {
			return nil, errors.Wrap(models.ErrModalClosed, "adding invitee")
		}
		return nil, s.page.AddInvitee(intent.Email, intent.Role)
	case IntentRemoveInvitee:
		if s.page == nil {
			return nil, errors.Wrap(models.ErrModalClosed, "removing invitee")
		}
		return nil, s.page.RemoveInvitee(intent.Email)
	case IntentSendLink:
		return nil, s.sendLink.Send(ctx, intent.Phone)
	}
	return nil, errors.Wrapf(ErrUnknownIntent, "%q", intent.Kind)
}

func (s *Shell) editField(intent Intent) error {
	switch intent.Form {
	case models.FormSignup:
		if s.signup == nil {
			return errors.Wrap(models.ErrModalClosed, "editing signup")
		}
		return s.signup.EditField(intent.Field, intent.Value)
	case models.FormCreatePage:
		if s.page == nil {
			return errors.Wrap(models.ErrModalClosed, "editing page")
		}
		return s.page.EditField(intent.Field, intent.Value)
	case models.FormSendLink:
		if intent.Field != models.FieldPhone {
			return models.NewUnknownFieldError(intent.Field)
		}
		return s.sendLink.SetPhone(intent.Value)
	}
	return errors.Wrapf(models.ErrUnknownForm, "%q", intent.Form)
}

func (s *Shell) submit(ctx context.Context, form models.FormName) (*models.Notice, error) {
	switch form {
	case models.FormSignup:
		if s.signup == nil {
			return nil, errors.Wrap(models.ErrModalClosed, "submitting signup")
		}
		notice, err := s.signup.Submit(ctx)
		if err != nil {
			return nil, err
		}
		return &notice, nil
	case models.FormCreatePage:
		if s.page == nil {
			return nil, errors.Wrap(models.ErrModalClosed, "submitting page")
		}
		notice, err := s.page.Submit(ctx)
		if err != nil {
			return nil, err
		}
		return &notice, nil
	case models.FormSendLink:
		return nil, s.sendLink.Submit(ctx)
	}
	return nil, errors.Wrapf(models.ErrUnknownForm, "%q", form)
}

// Snapshot renders the current state in locale.
func (s *Shell) Snapshot(ctx context.Context, locale string) (Snapshot, error) {
	locale = s.locale(locale)
	var snapshot Snapshot
	err := s.loop.Do(ctx, func() {
		snapshot = s.render(locale)
	})
	return snapshot, err
}

// Subscribe returns a channel receiving the current snapshot, then a new one
// after every processed event. Only the latest snapshot is kept for a slow
// reader. The channel is closed when ctx is done or the shell is closed.
func (s *Shell) Subscribe(ctx context.Context, locale string) (<-chan Snapshot, error) {
	sub := &subscriber{ch: make(chan Snapshot, 1), locale: s.locale(locale)}
	var err error
	if doErr := s.loop.Do(ctx, func() {
		if s.closed {
			err = models.ErrUnmounted
			return
		}
		s.subscribers[sub] = struct{}{}
		sub.ch <- s.render(sub.locale)
	}); doErr != nil {
		return nil, doErr
	}
	if err != nil {
		return nil, err
	}

	go func() {
		select {
		case <-ctx.Done():
			// A stopped loop publishes nothing more.
			_ = s.loop.Post(func() { s.unsubscribe(sub) })
		case <-s.loop.Stopped():
		}
	}()
	return sub.ch, nil
}

// Close unmounts every workflow, cancelling their timers, and closes all
// subscriptions. Later intents fail with models.ErrUnmounted.
func (s *Shell) Close(ctx context.Context) error {
	return s.loop.Do(ctx, func() {
		if s.closed {
			return
		}
		for _, name := range models.Modals {
			_ = s.modals.Close(name)
		}
		s.sendLink.Unmount()
		for sub := range s.subscribers {
			s.unsubscribe(sub)
		}
		s.closed = true
		s.logger.Info("shell closed")
	})
}

func (s *Shell) locale(locale string) string {
	if locale == "" {
		return s.config.Locale
	}
	return locale
}

func (s *Shell) render(locale string) Snapshot {
	return Snapshot{
		Modals:   s.modals.Set(),
		Signup:   newSignupView(s.signup),
		Page:     newPageView(s.page),
		SendLink: newSendLinkView(s.sendLink, s.localizer, locale),
	}
}

func (s *Shell) publish() {
	for sub := range s.subscribers {
		snapshot := s.render(sub.locale)
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}

func (s *Shell) unsubscribe(sub *subscriber) {
	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	close(sub.ch)
}
