package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanCode keeps ASCII letters and digits only.
func CleanCode(input string) string {
	out := strings.Builder{}
	for _, r := range input {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// DescriptionQuery cuts a budget description down to the prefix used for
// catalog lookups: before the first '(', then the first '-', and with strict
// set, before the first "AF_".
func DescriptionQuery(description string, strict bool) string {
	s := cutBefore(description, "(")
	s = cutBefore(s, "-")
	if strict {
		s = cutBefore(s, "AF_")
	}
	return strings.TrimSpace(s)
}

func cutBefore(s, sep string) string {
	before, _, _ := strings.Cut(s, sep)
	return before
}

func FoldAccents(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// HeaderKey folds accents and case so "COMPOSIÇÃO" and "Composicao" compare equal.
func HeaderKey(input string) string {
	return strings.ToUpper(strings.TrimSpace(FoldAccents(input)))
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
