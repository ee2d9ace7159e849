package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Currency string

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseCurrency upper-cases s and checks it is a three-letter code.
func ParseCurrency(s string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !currencyRe.MatchString(c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return Currency(c), nil
}

// ParseCurrencies parses every code and rejects duplicates.
func ParseCurrencies(codes []string) ([]Currency, error) {
	out := make([]Currency, 0, len(codes))
	seen := make(map[Currency]bool, len(codes))
	for _, s := range codes {
		c, err := ParseCurrency(s)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidCurrency, c)
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

func (c Currency) String() string { return string(c) }
