// localize contains all we need to turn message ids into user facing text.
// It is based on nicksnyder i18n library
package localize

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tidepool-org/landing/models"
)

//go:embed locales/*.yaml
var embedded embed.FS

const DefaultLocale = "en"

//go:generate mockgen -destination=mock/localizer.go -package=mock github.com/tidepool-org/landing/localize Localizer
type Localizer interface {
	Localize(key string, locale string, data map[string]interface{}) (string, error)
}

type I18nLocalizer struct {
	bundle *i18n.Bundle
}

// NewEmbeddedLocalizer loads the locales shipped with the binary.
func NewEmbeddedLocalizer() (*I18nLocalizer, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, errors.Wrap(err, "opening embedded locales")
	}
	return NewI18nLocalizerFS(sub)
}

// NewI18nLocalizer loads every yaml file of the localesPath directory.
// At least one file must be present.
func NewI18nLocalizer(localesPath string) (*I18nLocalizer, error) {
	info, err := os.Stat(localesPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading locales directory %s", localesPath)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", localesPath)
	}
	return NewI18nLocalizerFS(os.DirFS(localesPath))
}

func NewI18nLocalizerFS(fsys fs.FS) (*I18nLocalizer, error) {
	files, err := localizationFiles(fsys)
	if err != nil {
		return nil, err
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, file := range files {
		translations, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading translation file %s", file)
		}
		if _, err := bundle.ParseMessageFileBytes(translations, file); err != nil {
			return nil, errors.Wrapf(err, "parsing translation file %s", file)
		}
	}
	return &I18nLocalizer{bundle: bundle}, nil
}

// Localize returns the text of key in locale, falling back to english.
func (l *I18nLocalizer) Localize(key string, locale string, data map[string]interface{}) (string, error) {
	localizer := i18n.NewLocalizer(l.bundle, locale, DefaultLocale)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if msg == "" {
		msg = "<< Cannot find translation for item " + key + " >>"
	}
	return msg, err
}

// Notice fills in the text of n. A Field entry of the notice data is
// replaced by its localized label first.
func Notice(l Localizer, n models.Notice, locale string) models.Notice {
	data := make(map[string]interface{}, len(n.Data))
	for k, v := range n.Data {
		data[k] = v
	}
	if field, ok := data["Field"].(string); ok {
		if label, err := l.Localize("Field_"+field, locale, nil); err == nil {
			data["Field"] = label
		}
	}
	n.Text, _ = l.Localize(n.MessageID, locale, data)
	return n
}

func localizationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "listing locales")
	}
	var files []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if !entry.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, path.Join(".", entry.Name()))
		}
	}
	if len(files) < 1 {
		return nil, errors.New("no locale files (yml or yaml extension) found")
	}
	return files, nil
}
