package localize

import (
	"fmt"
	"sort"
	"strings"
)

type MockLocalizer struct {
	translations map[string]string
}

func NewMockLocalizer(translations map[string]string) *MockLocalizer {
	return &MockLocalizer{
		translations: translations,
	}
}

// Localize returns the registered translation with every {{.Key}} replaced
// by the matching data value.
func (l *MockLocalizer) Localize(key string, locale string, data map[string]interface{}) (string, error) {
	msg, ok := l.translations[key]
	if !ok {
		return "", fmt.Errorf("failed to localize %s", key)
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, "{{."+k+"}}", fmt.Sprint(data[k]))
	}
	return msg, nil
}
