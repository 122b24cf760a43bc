package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
)

// output formats command results as text tables or indented JSON.
type output struct {
	w      io.Writer
	format string
}

func newOutput(w io.Writer, format string) *output {
	return &output{w: w, format: format}
}

func (o *output) print(data any) error {
	if o.format == "json" {
		return o.printJSON(data)
	}

	switch v := data.(type) {
	case []formationGroup:
		return o.printFormations(v)
	case []lineup.Lineup:
		return o.printLineups(v)
	case []appearance.Stat:
		return o.printStats(v)
	default:
		return o.printJSON(data)
	}
}

func (o *output) printJSON(data any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.w, string(raw))
	return err
}

func (o *output) printFormations(groups []formationGroup) error {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "%s (%d players)\n", g.Label, g.PlayerCount)
		if len(g.Systems) == 0 {
			fmt.Fprintln(tw, "  (no systems)")
		}
		for _, s := range g.Systems {
			fmt.Fprintf(tw, "  %s\t%s\n", s.Name, strings.Join(s.Slots, " "))
		}
	}
	return tw.Flush()
}

func (o *output) printLineups(lineups []lineup.Lineup) error {
	if len(lineups) == 0 {
		_, err := fmt.Fprintln(o.w, "no lineups")
		return err
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	for i, l := range lineups {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.System, l.LastModified().Format(time.RFC3339))
		for _, g := range l.Grouped() {
			names := make([]string, 0, len(g.Assignments))
			for _, a := range g.Assignments {
				name := a.PlayerName
				if !a.Filled() {
					name = "-"
				}
				names = append(names, a.Slot+"="+name)
			}
			fmt.Fprintf(tw, "  %s\t%s\n", g.Position, strings.Join(names, "  "))
		}
	}
	return tw.Flush()
}

func (o *output) printStats(stats []appearance.Stat) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(o.w, "no appearances")
		return err
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tTOTAL\tGK\tFIELD")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Name, s.Total, s.AsGK, s.AsField)
	}
	return tw.Flush()
}
