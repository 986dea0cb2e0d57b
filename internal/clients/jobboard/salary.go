package jobboard

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var ErrSalaryOutOfRange = errors.New("salary out of range")

// ParseSalary keeps only the ASCII digits of text and reads them as one integer, so
// "$120,000 - $150,000" becomes 120000150000. Text without digits yields nil, sent as null.
func ParseSalary(text string) (*int64, error) {
	digits := strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)

	if digits == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrSalaryOutOfRange, "%q", text)
	}
	return &value, nil
}
