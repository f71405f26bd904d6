package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText pinta el snapshot en texto plano (host de consola).
func WriteText(w io.Writer, s Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rule := strings.Repeat("-", len(s.Title))

	fmt.Fprintf(tw, "%s\n%s\n%s\n\n", s.Title, rule, s.BillLabel)
	fmt.Fprintf(tw, "%s:\t%s\n\n", s.PartyCaption, s.Party)

	fmt.Fprintf(tw, "%s:\n", s.ItemsCaption)
	if len(s.Items) == 0 {
		fmt.Fprintln(tw, "  (none)")
	}
	for _, it := range s.Items {
		fmt.Fprintf(tw, "  %d.\t%s\n", it.Index, it.Description)
	}

	fmt.Fprintf(tw, "\n%s:\n", s.TotalsCaption)
	for _, t := range s.Totals {
		fmt.Fprintf(tw, "  %s\t%s\n", t.Label, t.Value)
	}
	return tw.Flush()
}
