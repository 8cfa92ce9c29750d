// Package money normalizes the prices the catalog API sends (numbers, or
// strings such as "41.990.000 ₫") into whole currency units, and formats
// them back for display.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Currency = "VND"

var ErrInvalidPrice = errors.New("invalid price")

// Parse keeps only the digits of s. Separators and currency symbols are
// dropped, so "1,299,000đ" and "1.299.000 VND" both parse to 1299000.
func Parse(s string) (int64, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return n, nil
}

// Amount decodes from a JSON number or a formatted string.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		n, err := Parse(str)
		if err != nil {
			return err
		}
		*a = Amount(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, s)
	}
	if f < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, s)
	}
	*a = Amount(int64(f))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(a), 10)), nil
}

// Format renders amount with the grouping of tag, e.g. "41.990.000 VND" for
// Vietnamese or "41,990,000 VND" for English.
func Format(amount int64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", amount) + " " + Currency
}

// ParseLocale maps a SHOP_LOCALE value to a language tag, defaulting to
// Vietnamese.
func ParseLocale(s string) language.Tag {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return language.Vietnamese
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Vietnamese
	}
	return tag
}
