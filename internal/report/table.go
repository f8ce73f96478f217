package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
)

// WriteTable renders one block per strategy with a row per frame.
func WriteTable(w io.Writer, res sim.RunResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range res.PerStrategy {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%s)\n", r.Strategy, r.Strategy.Tag())
		if r.Status != sim.StatusCompleted {
			fmt.Fprintf(tw, "  %s: %s\n", r.Status, r.Error)
			continue
		}
		fmt.Fprintln(tw, "FRAME\tSIZE\tPAGES\tALLOCATED\tFREE\tSTATE")
		for idx, f := range r.Frames {
			state := "available"
			if f.Unavailable {
				state = "unavailable"
			}
			fmt.Fprintf(tw, "F%d\t%d\t%s\t%d\t%d\t%s\n", idx, f.Size, joinInts(f.Pages), f.Allocated, f.Free, state)
		}
		fmt.Fprintf(tw, "total\t%d\t\t%d\t%d\t\n", r.Size, r.Allocated, r.Free)
		fmt.Fprintf(tw, "unallocated\t%s\n", unallocated(r))
	}
	return tw.Flush()
}

// WriteLog writes every strategy's narration in canonical order.
func WriteLog(w io.Writer, res sim.RunResult) error {
	for _, r := range res.PerStrategy {
		for _, line := range r.Log {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func unallocated(r sim.StrategyResult) string {
	if len(r.Unallocated) == 0 {
		return "-"
	}
	parts := make([]string, len(r.Unallocated))
	for i, u := range r.Unallocated {
		parts[i] = u.String()
	}
	return strings.Join(parts, ", ")
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
