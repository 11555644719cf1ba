package api

import (
	"net/http"
	"strconv"
	"strings"
)

type LangQ struct {
	Lang string
	Q    float64
}

const (
	HEADER_LANGUAGE = "Accept-Language"
	USER_LANGUAGE   = "x-tidepool-language"
)

// locale picks the language of a request: the user's explicit choice first,
// then the browser's preference. An empty result means the default locale.
func locale(req *http.Request) string {
	if lang := GetUserChosenLanguage(req); lang != "" {
		return lang
	}
	return GetBrowserPreferredLanguage(req)
}

//GetUserChosenLanguage returns the chosen language passed as a custom header
func GetUserChosenLanguage(req *http.Request) string {
	return strings.TrimSpace(req.Header.Get(USER_LANGUAGE))
}

//GetBrowserPreferredLanguage returns the preferred language extracted from the request browser
func GetBrowserPreferredLanguage(req *http.Request) string {
	acptlng := req.Header.Get(HEADER_LANGUAGE)
	if acptlng == "" {
		return ""
	}
	best := LangQ{}
	for _, lq := range parseAcceptLanguage(acptlng) {
		if lq.Lang != "*" && lq.Q > best.Q {
			best = lq
		}
	}
	// the header sometimes carries a full locale (eg FR-fr), only the
	// language part is kept
	if len(best.Lang) < 2 {
		return ""
	}
	return strings.ToLower(best.Lang[0:2])
}

//parseAcceptLanguage will return array of languages extracted from given Accept-Language value
//Entries with an unreadable quality are skipped
func parseAcceptLanguage(acptLang string) []LangQ {
	var lqs []LangQ

	for _, langQStr := range strings.Split(acptLang, ",") {
		langQ := strings.Split(strings.TrimSpace(langQStr), ";")
		lang := strings.TrimSpace(langQ[0])
		if lang == "" {
			continue
		}
		if len(langQ) == 1 {
			lqs = append(lqs, LangQ{lang, 1})
			continue
		}
		qp := strings.SplitN(strings.TrimSpace(langQ[1]), "=", 2)
		if len(qp) != 2 || qp[0] != "q" {
			continue
		}
		q, err := strconv.ParseFloat(qp[1], 64)
		if err != nil {
			continue
		}
		lqs = append(lqs, LangQ{lang, q})
	}
	return lqs
}
