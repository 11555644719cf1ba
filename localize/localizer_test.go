package localize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidepool-org/landing/models"
)

const TestCreatorName = "Chuck Norris"

const (
	expectedLocalizedContent = "This is a test content created by " + TestCreatorName + "."
	expectedSubject          = "This form is here for testing purposes."
	locale                   = "en"
)

func Test_CreateLocalizerBundle(t *testing.T) {
	localizer, err := NewI18nLocalizer("shouldFail")
	assert.Error(t, err)
	assert.Nil(t, localizer)

	localizer, err = NewI18nLocalizer(".")
	assert.Error(t, err, "a directory without yaml files must be refused")
	assert.Nil(t, localizer)

	localizer, err = NewI18nLocalizer("./test_fixture/")
	require.NoError(t, err)
	assert.NotNil(t, localizer)
}

func Test_GetLocalizedPart(t *testing.T) {
	localizer, err := NewI18nLocalizer("./test_fixture/")
	require.NoError(t, err)

	content := map[string]interface{}{"TestCreatorName": TestCreatorName}
	localizedContent, err := localizer.Localize("TestContentInjection", locale, content)
	require.NoError(t, err)
	assert.Equal(t, expectedLocalizedContent, localizedContent)

	localizedContent, err = localizer.Localize("TestTemplateSubject", locale, nil)
	require.NoError(t, err)
	assert.Equal(t, expectedSubject, localizedContent)

	localizedContent, err = localizer.Localize("wrongKey", locale, nil)
	assert.Error(t, err)
	assert.Equal(t, "<< Cannot find translation for item wrongKey >>", localizedContent)
}

func TestEmbeddedLocales(t *testing.T) {
	localizer, err := NewEmbeddedLocalizer()
	require.NoError(t, err)

	msg, err := localizer.Localize(models.MessageLinkSent, "en", nil)
	require.NoError(t, err)
	assert.Equal(t, "Link sent to your phone!", msg)

	msg, err = localizer.Localize(models.MessageLinkSent, "fr", nil)
	require.NoError(t, err)
	assert.Equal(t, "Lien envoyé sur votre téléphone !", msg)

	// unknown languages fall back to english
	msg, err = localizer.Localize(models.MessageInvalidPhone, "de", nil)
	require.NoError(t, err)
	assert.Equal(t, "Please enter a valid phone number.", msg)
}

func TestEveryMessageIsTranslated(t *testing.T) {
	localizer, err := NewEmbeddedLocalizer()
	require.NoError(t, err)

	ids := []string{
		models.MessageMissingField,
		models.MessageBadFormat,
		models.MessageUnknownField,
		models.MessageEmptyInviteeEmail,
		models.MessageDuplicateInvitee,
		models.MessageInvalidPhone,
		models.MessageAccountCreated,
		models.MessagePageCreated,
		models.MessageLinkSent,
	}
	for _, lang := range []string{"en", "fr"} {
		for _, id := range ids {
			_, err := localizer.Localize(id, lang, map[string]interface{}{"Field": "x", "PageName": "y"})
			assert.NoError(t, err, "%s/%s", lang, id)
		}
	}
}

func TestNotice(t *testing.T) {
	localizer, err := NewEmbeddedLocalizer()
	require.NoError(t, err)

	notice := Notice(localizer, models.NewFailure(models.MessageMissingField, map[string]interface{}{"Field": "pageName"}), "en")
	assert.Equal(t, "Please fill in the required field: page name.", notice.Text)
	assert.Equal(t, models.NoticeFailure, notice.Kind)
	assert.Equal(t, "pageName", notice.Data["Field"], "notice data must not be rewritten")

	notice = Notice(localizer, models.NewSuccess(models.MessagePageCreated, map[string]interface{}{"PageName": "Bakery"}), "en")
	assert.Equal(t, `Page "Bakery" created successfully!`, notice.Text)
}

func TestMockLocalizer(t *testing.T) {
	localizer := NewMockLocalizer(map[string]string{"Hello": "Hello {{.Name}}"})
	msg, err := localizer.Localize("Hello", "en", map[string]interface{}{"Name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", msg)

	_, err = localizer.Localize("Bye", "en", nil)
	assert.Error(t, err)
}
