package util

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseQuantity reads a budget quantity. Strings use the pt-BR convention:
// '.' groups thousands and ',' marks decimals. Anything unparseable is 0.
func ParseQuantity(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}

	s := strings.ReplaceAll(ToString(v), ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return parseLeadingFloat(s)
}

func parseLeadingFloat(s string) float64 {
	token := leadingNumber.FindString(strings.TrimSpace(s))
	if token == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
