package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/Osariemen7/portfolio/internal/metrics"
)

// printStats writes the metrics summary, either as JSON or as a plain report.
func printStats(w io.Writer, stats *metrics.Stats, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total visitors\t%d\n", stats.TotalVisitors)
	fmt.Fprintf(tw, "Unique visitors\t%d\n", stats.UniqueVisitors)
	fmt.Fprintf(tw, "Visitors today\t%d\n", stats.VisitorsToday)
	fmt.Fprintf(tw, "Visitors this week\t%d\n", stats.VisitorsThisWeek)

	if len(stats.TopPaths) > 0 {
		fmt.Fprintln(tw, "\nPATH\tVIEWS")
		for _, p := range stats.TopPaths {
			fmt.Fprintf(tw, "%s\t%d\n", p.Path, p.Views)
		}
	}

	if len(stats.Outcomes) > 0 {
		outcomes := make([]string, 0, len(stats.Outcomes))
		for o := range stats.Outcomes {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)

		fmt.Fprintln(tw, "\nCONTACT OUTCOME\tCOUNT")
		for _, o := range outcomes {
			fmt.Fprintf(tw, "%s\t%d\n", o, stats.Outcomes[o])
		}
	}

	if len(stats.RecentVisitors) > 0 {
		fmt.Fprintln(tw, "\nWHEN\tVISITOR\tPATH")
		for _, v := range stats.RecentVisitors {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Timestamp.Format("2006-01-02 15:04"), v.HashedIP, v.Path)
		}
	}

	return tw.Flush()
}
