package handler

import (
	"time"
	_ "time/tzdata"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// Timezone is the IANA time zone of the site and its containers.
type Timezone struct{ Base }

func (*Timezone) ID() string          { return IDTimezone }
func (*Timezone) Label() string       { return "Timezone" }
func (*Timezone) Kind() Kind          { return KindText }
func (*Timezone) IsRequired() bool    { return true }
func (*Timezone) Placeholder() string { return "E.g. Australia/Melbourne" }

func (*Timezone) Hint(*api.Responses) string {
	return "Used for the site and the containers."
}

func (h *Timezone) Discover() api.Value { return h.dotenv("TZ") }

func (*Timezone) Default(*api.Responses) api.Value { return api.String("UTC") }

func (*Timezone) Validate(v api.Value) string {
	tz := v.Str()
	if tz == "" {
		return "Please enter a valid timezone."
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "Please enter a valid timezone."
	}
	return ""
}

func (*Timezone) Transform(v api.Value) api.Value { return trimString(v) }

func (*Timezone) Process(r *api.Responses, t *materialize.Tree) error {
	return setEnv(t, "TZ", r.Str(IDTimezone))
}
