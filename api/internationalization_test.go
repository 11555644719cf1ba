package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocale(t *testing.T) {
	tests := []struct {
		user     string
		browser  string
		expected string
	}{
		{expected: ""},
		{user: "fr", browser: "en-US", expected: "fr"},
		{browser: "fr-FR,fr;q=0.9,en;q=0.8", expected: "fr"},
		{browser: "en;q=0.5, FR-fr;q=0.9", expected: "fr"},
		{browser: "*", expected: ""},
		{browser: "x", expected: ""},
		{browser: "fr;q=abc, en;q=0.2", expected: "en"},
		{browser: "de;level=1", expected: ""},
	}

	for _, test := range tests {
		req := httptest.NewRequest("GET", "/v1/state", nil)
		if test.user != "" {
			req.Header.Set(USER_LANGUAGE, test.user)
		}
		if test.browser != "" {
			req.Header.Set(HEADER_LANGUAGE, test.browser)
		}
		assert.Equal(t, test.expected, locale(req), "user %q browser %q", test.user, test.browser)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	assert.Equal(t, []LangQ{{"fr-FR", 1}, {"fr", 0.9}, {"en", 0.8}}, parseAcceptLanguage("fr-FR, fr;q=0.9,en;q=0.8"))
	assert.Empty(t, parseAcceptLanguage(" , ;q=1"))
}
