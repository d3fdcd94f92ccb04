// Package sequence derives human-readable, per-company sequential names
// such as share certificate numbers ("GUM-1", "GUM-2", ...).
package sequence

import (
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"
)

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// NextName returns the successor of last. When last is nil the sequence
// starts at "<PREFIX>-1", where PREFIX is the upper-cased first
// prefixLength characters of prefixSource.
//
// Only the trailing digit run of last is replaced; everything before it is
// kept byte for byte, so "GUMMY-7" becomes "GUMMY-8" and "A1B-2" becomes
// "A1B-3". A name without trailing digits is treated as ending in 0.
func NextName(prefixSource string, last *string, prefixLength int) string {
	if last == nil {
		return initialPrefix(prefixSource, prefixLength) + "-1"
	}

	prefix, number := Split(*last)
	return prefix + number.Add(number, big.NewInt(1)).String()
}

// Split separates name into its non-numeric prefix and trailing number.
func Split(name string) (string, *big.Int) {
	m := trailingDigits.FindStringSubmatch(name)
	if m == nil {
		return name, new(big.Int)
	}
	n, _ := new(big.Int).SetString(m[2], 10)
	return m[1], n
}

func initialPrefix(source string, length int) string {
	source = strings.TrimSpace(source)
	if length < 0 {
		length = 0
	}
	if utf8.RuneCountInString(source) > length {
		source = string([]rune(source)[:length])
	}
	return strings.ToUpper(source)
}
