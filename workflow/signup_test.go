package workflow

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidepool-org/landing/clients/mock"
	"github.com/tidepool-org/landing/models"
)

func fillSignup(t *testing.T, s *Signup) {
	t.Helper()
	for name, value := range map[models.FieldName]string{
		models.FieldFirstName: "Ada",
		models.FieldSurname:   "Lovelace",
		models.FieldEmail:     "ada@example.org",
		models.FieldPassword:  "analytical",
		models.FieldGender:    "female",
	} {
		require.NoError(t, s.EditField(name, value))
	}
}

func TestSignupDraftDefaultsToToday(t *testing.T) {
	env, _, _ := newTestEnv(t)
	s := NewSignup(env, nil)
	draft := s.Draft()
	assert.Equal(t, "16", draft.Day)
	assert.Equal(t, "10", draft.Month)
	assert.Equal(t, "2026", draft.Year)
	assert.Equal(t, models.GenderUnset, draft.Gender)
	assert.NotEmpty(t, s.ID())
}

func TestBirthdayOptions(t *testing.T) {
	opts := NewBirthdayOptions(epoch)
	assert.Len(t, opts.Days, 31)
	assert.Equal(t, 1, opts.Days[0])
	assert.Equal(t, Month{Value: 1, Name: "Jan"}, opts.Months[0])
	assert.Equal(t, Month{Value: 12, Name: "Dec"}, opts.Months[11])
	assert.Len(t, opts.Years, 100)
	assert.Equal(t, 2026, opts.Years[0])
	assert.Equal(t, 1927, opts.Years[99])
}

func TestSignupEditField(t *testing.T) {
	tests := []struct {
		name   models.FieldName
		value  string
		reason models.ValidationReason
	}{
		{name: models.FieldDay, value: "31"},
		{name: models.FieldDay, value: "32", reason: models.ReasonBadFormat},
		{name: models.FieldDay, value: "0", reason: models.ReasonBadFormat},
		{name: models.FieldMonth, value: "12"},
		{name: models.FieldMonth, value: "13", reason: models.ReasonBadFormat},
		{name: models.FieldYear, value: "1927"},
		{name: models.FieldYear, value: "1926", reason: models.ReasonBadFormat},
		{name: models.FieldYear, value: "2027", reason: models.ReasonBadFormat},
		{name: models.FieldYear, value: "soon", reason: models.ReasonBadFormat},
		{name: models.FieldGender, value: "custom"},
		{name: models.FieldGender, value: "other", reason: models.ReasonBadFormat},
		{name: "nickname", value: "ada", reason: models.ReasonUnknownField},
	}

	for _, test := range tests {
		env, _, _ := newTestEnv(t)
		s := NewSignup(env, nil)
		err := s.EditField(test.name, test.value)
		if test.reason == "" {
			assert.NoError(t, err, "%s=%q", test.name, test.value)
			continue
		}
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr), "%s=%q", test.name, test.value)
		assert.Equal(t, test.reason, verr.Reason)
		assert.Equal(t, test.name, verr.Field)
	}
}

func TestSignupBlankFieldsStayOpen(t *testing.T) {
	required := []models.FieldName{
		models.FieldFirstName,
		models.FieldSurname,
		models.FieldEmail,
		models.FieldPassword,
		models.FieldGender,
	}

	for _, blank := range required {
		t.Run(string(blank), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock.NewMockNotifier(ctrl)
			notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

			env, _, _ := newTestEnv(t)
			env.Notifier = notifier
			closed := false
			s := NewSignup(env, func() { closed = true })
			fillSignup(t, s)
			require.NoError(t, s.EditField(blank, ""))

			_, err := s.Submit(context.Background())
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, models.ReasonMissingField, verr.Reason)
			assert.Equal(t, blank, verr.Field)
			assert.False(t, closed)
			assert.False(t, s.Unmounted())
		})
	}
}

func TestSignupWhitespaceIsBlank(t *testing.T) {
	env, _, _ := newTestEnv(t)
	s := NewSignup(env, nil)
	fillSignup(t, s)
	require.NoError(t, s.EditField(models.FieldFirstName, "   "))

	_, err := s.Submit(context.Background())
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.FieldFirstName, verr.Field)
}

func TestSignupRejectsBadEmail(t *testing.T) {
	env, _, _ := newTestEnv(t)
	s := NewSignup(env, nil)
	fillSignup(t, s)
	require.NoError(t, s.EditField(models.FieldEmail, "ada at example"))

	_, err := s.Submit(context.Background())
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.ReasonBadFormat, verr.Reason)
	assert.Equal(t, models.FieldEmail, verr.Field)
}

func TestSignupSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), models.Acknowledgement{Form: models.FormSignup, Subject: "ada@example.org"}).
		Return(nil).
		Times(1)

	env, _, _ := newTestEnv(t)
	env.Notifier = notifier
	closed := 0
	s := NewSignup(env, func() { closed++ })
	fillSignup(t, s)

	notice, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.NoticeSuccess, notice.Kind)
	assert.Equal(t, models.MessageAccountCreated, notice.MessageID)
	assert.Equal(t, 1, closed)
}

func TestSignupNotifierFailureStillCompletes(t *testing.T) {
	env, _, notifier := newTestEnv(t)
	notifier.Err = errors.New("collaborator unavailable")
	closed := false
	s := NewSignup(env, func() { closed = true })
	fillSignup(t, s)

	notice, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.MessageAccountCreated, notice.MessageID)
	assert.True(t, closed)
}

func TestSignupUnmounted(t *testing.T) {
	env, _, _ := newTestEnv(t)
	s := NewSignup(env, nil)
	fillSignup(t, s)
	s.Unmount()

	assert.True(t, errors.Is(s.EditField(models.FieldFirstName, "Bob"), models.ErrUnmounted))
	_, err := s.Submit(context.Background())
	assert.True(t, errors.Is(err, models.ErrUnmounted))
	assert.Equal(t, models.SignupDraft{}, s.Draft())
}
