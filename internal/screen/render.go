package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/cabmobile/monitor/internal/state"
)

const barWidth = 30

// RenderStatistics writes a plain-text rendition of v
func RenderStatistics(w io.Writer, v StatisticsView) {
	fmt.Fprintf(w, "%s\n\n", v.Title)

	renderSection(w, "Resumen", v.Summary, func(c SummaryCard) {
		fmt.Fprintf(w, "  %s: %d\n", c.Label, c.TotalToday)
		fmt.Fprintf(w, "  Mes: %d  Año: %d  Total: %d\n", c.TotalThisMonth, c.TotalThisYear, c.TotalAllTime)
	})

	renderSection(w, "Detecciones por hora", v.Chart, func(c BarChart) {
		if c.NoData {
			fmt.Fprintln(w, "  sin datos")
			return
		}
		for _, b := range c.Bars {
			n := int(b.Fraction * barWidth)
			fmt.Fprintf(w, "  %02d:00 %-*s %d\n", b.Hour, barWidth, strings.Repeat("#", n), b.Count)
		}
	})

	renderSection(w, "Zonas", v.Zones, func(zones []ZoneCard) {
		if len(zones) == 0 {
			fmt.Fprintln(w, "  sin zonas")
			return
		}
		for _, z := range zones {
			fmt.Fprintf(w, "  %-24s valorizable %3d  orgánico %3d  no valorizable %3d\n",
				z.ZoneName, z.Recyclable, z.Organic, z.NonRecyclable)
		}
	})
}

// RenderHome writes the current tip and the page dots
func RenderHome(w io.Writer, v HomeView) {
	fmt.Fprintf(w, "%s\n\n", v.Title)
	fmt.Fprintf(w, "TIP  %s\n", v.Tip.Title)
	fmt.Fprintf(w, "     %s\n\n", v.Tip.Description)
	var dots strings.Builder
	for _, on := range v.Dots {
		if on {
			dots.WriteString("● ")
		} else {
			dots.WriteString("○ ")
		}
	}
	fmt.Fprintln(w, strings.TrimSpace(dots.String()))
}

func renderSection[T any](w io.Writer, title string, s state.ViewState[T], body func(T)) {
	fmt.Fprintf(w, "%s\n", title)
	switch s.Kind() {
	case state.KindSuccess:
		data, _ := s.Data()
		body(data)
	case state.KindError:
		msg, _ := s.Message()
		fmt.Fprintf(w, "  error: %s\n", msg)
	default:
		fmt.Fprintln(w, "  cargando...")
	}
	fmt.Fprintln(w)
}
