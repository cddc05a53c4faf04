// Package parsefields locates the contact fields of a submitted form in its
// extracted text.
package parsefields

import (
	"regexp"

	"github.com/joseph-ayodele/form-intake/constants"
	"github.com/joseph-ayodele/form-intake/internal/common"
)

var (
	// "Name:" then one or two word tokens on the same line.
	reName = regexp.MustCompile(`Name:\s*(\w+(?:[^\S\r\n]+\w+)?)`)
	// "Email:" then a minimal something@something.something shape.
	reEmail = regexp.MustCompile(`Email:\s*(\S+@\S+\.\S+)`)
)

// Fields are the values pulled out of a document.
type Fields struct {
	Name  string
	Email string
}

// Parse matches name and email independently; the first match of each wins.
// If either is missing the whole parse fails with a FIELD_EXTRACTION error.
func Parse(text string) (Fields, error) {
	name, ok := firstGroup(reName, text)
	if !ok {
		return Fields{}, common.FieldExtractionError(constants.MsgFieldsNotFound)
	}
	email, ok := firstGroup(reEmail, text)
	if !ok {
		return Fields{}, common.FieldExtractionError(constants.MsgFieldsNotFound)
	}
	return Fields{Name: name, Email: email}, nil
}

func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
