package parser

import (
	"strconv"
	"strings"
)

// Tokens treated as an explicit "no value". Hand-typed reports use a dash for blanks
// and spreadsheet exports leak #VALUE! into otherwise numeric cells.
func isNullToken(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "-", "#VALUE!":
		return true
	}
	return false
}

// parseOptionalFloat resolves a token to a float pointer. Null tokens and
// unparsable values both resolve to nil; parsing never fails mid-document.
func parseOptionalFloat(s string) *float64 {
	if isNullToken(s) {
		return nil
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "m")
	cleaned = strings.TrimSuffix(cleaned, "%")
	val, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return nil
	}
	return &val
}

func parseOptionalInt(s string) *int {
	f := parseOptionalFloat(s)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// parseBlowCounts splits an SPT blow triplet like "4, 7, 9" or "4/7/9".
// Missing or null positions stay nil; at most three counts are kept.
func parseBlowCounts(s string) []*float64 {
	if isNullToken(s) {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/'
	})
	blows := make([]*float64, 0, 3)
	for _, p := range parts {
		if len(blows) == 3 {
			break
		}
		blows = append(blows, parseOptionalFloat(p))
	}
	if len(blows) == 0 {
		return nil
	}
	return blows
}
