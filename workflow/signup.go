package workflow

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tidepool-org/landing/models"
	"github.com/tidepool-org/landing/validate"
)

const birthYears = 100

type (
	// BirthdayOptions are the values offered by the date of birth selectors.
	BirthdayOptions struct {
		Days   []int   `json:"days"`
		Months []Month `json:"months"`
		Years  []int   `json:"years"`
	}

	Month struct {
		Value int    `json:"value"`
		Name  string `json:"name"`
	}
)

// NewBirthdayOptions lists days 1-31, the twelve months and the last hundred
// years, most recent first.
func NewBirthdayOptions(now time.Time) BirthdayOptions {
	opts := BirthdayOptions{
		Days:   make([]int, 31),
		Months: make([]Month, 12),
		Years:  make([]int, birthYears),
	}
	for i := range opts.Days {
		opts.Days[i] = i + 1
	}
	for i := range opts.Months {
		m := time.Month(i + 1)
		opts.Months[i] = Month{Value: int(m), Name: m.String()[:3]}
	}
	for i := range opts.Years {
		opts.Years[i] = now.Year() - i
	}
	return opts
}

func (o BirthdayOptions) allows(name models.FieldName, value string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	switch name {
	case models.FieldDay:
		return n >= o.Days[0] && n <= o.Days[len(o.Days)-1]
	case models.FieldMonth:
		return n >= o.Months[0].Value && n <= o.Months[len(o.Months)-1].Value
	case models.FieldYear:
		return n <= o.Years[0] && n >= o.Years[len(o.Years)-1]
	}
	return true
}

// Signup drives the account creation dialog.
type Signup struct {
	id        string
	env       Env
	draft     models.SignupDraft
	birthday  BirthdayOptions
	close     func()
	logger    *zap.SugaredLogger
	unmounted bool
}

// NewSignup starts a fresh draft. close is called once the account is
// created and must close the owning dialog.
func NewSignup(env Env, close func()) *Signup {
	env = env.withDefaults()
	id := newID()
	now := env.Clock.Now()
	return &Signup{
		id:       id,
		env:      env,
		draft:    models.NewSignupDraft(now),
		birthday: NewBirthdayOptions(now),
		close:    close,
		logger:   env.Logger.With(zap.String("workflow", "signup"), zap.String("id", id)),
	}
}

func (s *Signup) ID() string {
	return s.id
}

func (s *Signup) Draft() models.SignupDraft {
	return s.draft
}

func (s *Signup) BirthdayOptions() BirthdayOptions {
	return s.birthday
}

// EditField sets one field of the draft. Date of birth parts must be one of
// the offered options.
func (s *Signup) EditField(name models.FieldName, value string) error {
	if s.unmounted {
		return models.ErrUnmounted
	}
	switch name {
	case models.FieldDay, models.FieldMonth, models.FieldYear:
		if !s.birthday.allows(name, value) {
			return models.NewBadFormatError(name)
		}
	}
	return s.draft.Set(name, value)
}

// Submit creates the account if every required field is filled in. On
// failure the dialog stays open and the first failing field is reported.
func (s *Signup) Submit(ctx context.Context) (models.Notice, error) {
	if s.unmounted {
		return models.Notice{}, models.ErrUnmounted
	}
	if err := validate.Fields(s.draft.Fields()).Err(); err != nil {
		s.logger.Debugw("signup rejected", zap.Error(err))
		return models.Notice{}, err
	}

	notify(ctx, s.env.Notifier, s.logger, models.Acknowledgement{
		Form:    models.FormSignup,
		Subject: s.draft.Email,
	})
	s.logger.Info("account created")
	if s.close != nil {
		s.close()
	}
	return models.NewSuccess(models.MessageAccountCreated, nil), nil
}

// Unmount discards the draft. Later calls fail with ErrUnmounted.
func (s *Signup) Unmount() {
	s.unmounted = true
	s.draft = models.SignupDraft{}
}

func (s *Signup) Unmounted() bool {
	return s.unmounted
}
