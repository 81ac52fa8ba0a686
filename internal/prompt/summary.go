package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/handler"
)

// Summary writes one line per resolved setting, in resolution order.
func Summary(w io.Writer, handlers []handler.Handler, r *api.Responses) error {
	width := 0
	for _, h := range handlers {
		if r.Has(h.ID()) {
			width = max(width, lipgloss.Width(h.Label()))
		}
	}

	re := lipgloss.NewRenderer(w)
	title := re.NewStyle().Bold(true).Underline(true)
	label := re.NewStyle().Width(width + 2).Faint(true)
	value := re.NewStyle().Bold(true)

	if _, err := fmt.Fprintln(w, title.Render("Installation summary")); err != nil {
		return err
	}
	for _, h := range handlers {
		v, ok := r.Get(h.ID())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, label.Render(h.Label())+value.Render(display(v))); err != nil {
			return err
		}
	}
	return nil
}

func display(v api.Value) string {
	if s := v.Display(); s != "" {
		return s
	}
	return "-"
}
