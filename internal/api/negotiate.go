package api

import (
	"strings"

	"golang.org/x/text/language"
)

// negotiate picks the best available locale for an Accept-Language header.
// Locale codes use underscore file convention ("en_US") while BCP 47 uses
// hyphens, so codes are bridged both ways. Returns "" when nothing matches
// or the header is unparseable.
func negotiate(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(available))
	codes := make([]string, 0, len(available))
	for _, code := range available {
		tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return ""
	}

	wanted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(wanted) == 0 {
		return ""
	}

	_, index, conf := language.NewMatcher(tags).Match(wanted...)
	if conf == language.No {
		return ""
	}
	return codes[index]
}
