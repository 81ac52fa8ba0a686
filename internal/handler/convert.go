package handler

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]+`)
	machineNameRe  = regexp.MustCompile(`^[a-z0-9_]+$`)
	machineIdentRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// words splits s into lower-cased alphanumeric words.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ToMachineName lower-cases s and collapses every run of other characters
// into a single underscore: "My Project" becomes "my_project".
func ToMachineName(s string) string {
	return strings.Trim(nonAlnumRe.ReplaceAllString(strings.ToLower(s), "_"), "_")
}

// ToKebab is ToMachineName with hyphens.
func ToKebab(s string) string {
	return strings.ReplaceAll(ToMachineName(s), "_", "-")
}

// ToTitle turns "star-wars_site" into "Star Wars Site".
func ToTitle(s string) string {
	ws := words(s)
	for i, w := range ws {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		ws[i] = string(r)
	}
	return strings.Join(ws, " ")
}

// ToPascal turns "sw_core" into "SwCore".
func ToPascal(s string) string {
	return strings.ReplaceAll(ToTitle(s), " ", "")
}

// Abbreviate shortens a machine name to the first letter of each of its words:
// "star_wars" becomes "sw". A single word is cut to its first four letters.
func Abbreviate(machineName string) string {
	ws := words(machineName)
	switch len(ws) {
	case 0:
		return ""
	case 1:
		r := []rune(ws[0])
		if len(r) > 4 {
			r = r[:4]
		}
		return string(r)
	}
	var b strings.Builder
	for _, w := range ws {
		b.WriteRune([]rune(w)[0])
	}
	return b.String()
}
