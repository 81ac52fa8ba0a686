package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drevops/vortex-sub001/api"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		in, machine, kebab, title, pascal, abbrev string
	}{
		{"My Project", "my_project", "my-project", "My Project", "MyProject", "mp"},
		{"star-wars", "star_wars", "star-wars", "Star Wars", "StarWars", "sw"},
		{"  Drupal  ", "drupal", "drupal", "Drupal", "Drupal", "drup"},
		{"ACME & Co. 2", "acme_co_2", "acme-co-2", "Acme Co 2", "AcmeCo2", "ac2"},
		{"", "", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.machine, ToMachineName(tt.in))
			assert.Equal(t, tt.kebab, ToKebab(tt.in))
			assert.Equal(t, tt.title, ToTitle(tt.in))
			assert.Equal(t, tt.pascal, ToPascal(tt.in))
			assert.Equal(t, tt.abbrev, Abbreviate(tt.in))
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		raw  any
		want api.Value
	}{
		{"text", KindText, "Star Wars", api.String("Star Wars")},
		{"text number", KindText, 42, api.String("42")},
		{"confirm bool", KindConfirm, false, api.Bool(false)},
		{"confirm word", KindConfirm, "Yes", api.Bool(true)},
		{"confirm digit", KindConfirm, "0", api.Bool(false)},
		{"select", KindSelect, "ftp", api.String("ftp")},
		{"multiselect list", KindMultiSelect, []any{"solr", "valkey"}, api.List("solr", "valkey")},
		{"multiselect csv", KindMultiSelect, "solr, ,valkey", api.List("solr", "valkey")},
		{"absent", KindText, nil, api.None()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestCoerce_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		raw  any
	}{
		{"confirm nonsense", KindConfirm, "perhaps"},
		{"text from bool", KindText, true},
		{"select from list", KindSelect, []any{"a"}},
		{"nested map", KindText, map[string]any{"a": 1}},
		{"list of numbers", KindMultiSelect, []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.kind, tt.raw)
			assert.ErrorIs(t, err, api.ErrValidation)
		})
	}
}
