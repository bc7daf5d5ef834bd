package layout

import (
	"strings"
	"time"

	"github.com/wippyai/xmlbin/errors"
)

// DefaultDateTimePattern is the storage pattern used for xs:dateTime leaves
// unless the compiler is configured otherwise.
const DefaultDateTimePattern = "yyyyMMddHHmmss"

// xmlDateTime is the lexical form produced when decoding a datetime window.
const xmlDateTime = "2006-01-02T15:04:05"

var dateTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// DateTimeLayout translates a storage pattern made of yyyy, MM, dd, HH, mm
// and ss tokens plus separator literals into a time layout. The translated
// layout always has the same byte length as the pattern.
func DateTimeLayout(pattern string) (string, error) {
	if pattern == "" {
		return "", errors.InvalidInput(errors.PhaseCompile, "empty datetime pattern")
	}

	var b strings.Builder
	rest := pattern
next:
	for rest != "" {
		for _, t := range dateTokens {
			if strings.HasPrefix(rest, t.token) {
				b.WriteString(t.layout)
				rest = rest[len(t.token):]
				continue next
			}
		}
		switch c := rest[0]; c {
		case '-', ':', ' ', 'T', '/', '_', '.':
			b.WriteByte(c)
			rest = rest[1:]
		default:
			return "", errors.New(errors.PhaseCompile, errors.KindInvalidInput).
				Value(pattern).
				Detail("unsupported character %q in datetime pattern %q", c, pattern).
				Build()
		}
	}
	return b.String(), nil
}

// parseXMLDateTime accepts xs:dateTime text with or without a zone. Zoned
// values are converted to UTC before formatting.
func parseXMLDateTime(text string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(xmlDateTime, text)
}

func parseStored(layout, text string) (time.Time, error) {
	return time.Parse(layout, text)
}
