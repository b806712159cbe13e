package events

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/merttpolat/portfolio/internal/models"
)

const notFound = "Not found"

// WriteSummary печатает таблицу событий манифеста: слаг, дата, место.
func WriteSummary(w io.Writer, m *models.Manifest) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "EVENT\tDATE\tLOCATION\n")
	for _, slug := range m.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", slug, orDefault(m.Dates[slug], notFound), orDefault(m.Locations[slug], notFound))
	}
	fmt.Fprintf(tw, "\n%d event(s)\n", len(m.Events))

	return tw.Flush()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
