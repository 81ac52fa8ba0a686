package handler

import (
	"strings"

	"github.com/drevops/vortex-sub001/api"
)

// Coerce converts a caller-supplied answer, as decoded from YAML, JSON or an
// environment variable, into a value of the type kind expects. Strings are
// accepted for every kind: "yes"/"no" style words for confirm and
// comma-separated items for multiselect.
func Coerce(kind Kind, raw any) (api.Value, error) {
	v, err := api.FromInterface(raw)
	if err != nil {
		return api.None(), api.Validationf("%v", err)
	}
	if !v.Present() {
		return v, nil
	}

	switch kind {
	case KindConfirm:
		switch v.Kind() {
		case api.KindBool:
			return v, nil
		case api.KindString:
			b, ok := parseYesNo(v.Str())
			if !ok {
				return api.None(), api.Validationf("%q is not a yes/no answer", v.Str())
			}
			return api.Bool(b), nil
		}
	case KindMultiSelect:
		switch v.Kind() {
		case api.KindList:
			return v, nil
		case api.KindString:
			return api.List(SplitList(v.Str())...), nil
		}
	default:
		if v.Kind() == api.KindString {
			return v, nil
		}
	}
	return api.None(), api.Validationf("%s answer cannot be a %s", kind, v.Kind())
}

// SplitList splits a comma-separated answer, dropping blanks.
func SplitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "on":
		return true, true
	case "n", "no", "false", "0", "off":
		return false, true
	}
	return false, false
}
