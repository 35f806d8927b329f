package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// WriteTable renders the trace as a text table followed by a summary line.
func WriteTable(w io.Writer, res *Result) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"At", "Kind", "Axis", "Old", "New", "Offset", "Velocity", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range res.Records {
		table.Append([]string{
			num(r.AtMs),
			r.Kind,
			r.Axis,
			optNum(r.Kind == KindChange, r.Old),
			optNum(r.Kind == KindChange, r.New),
			fmt.Sprintf("%s,%s", num(r.Offset.X), num(r.Offset.Y)),
			optNum(r.Kind == KindFlick, r.Velocity),
			detail(r),
		})
	}
	table.Render()

	summary := fmt.Sprintf("%s: %d records, final offset %s,%s, phase %s",
		res.Name, len(res.Records), num(res.Final.X), num(res.Final.Y), res.Status.Phase)
	if res.Truncated {
		summary += " (timer limit reached)"
	}
	_, err := fmt.Fprintln(w, summary)
	return errors.Wrap(err, "write summary")
}

// WriteJSON writes one JSON object per record.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	for i := range res.Records {
		if err := enc.Encode(&res.Records[i]); err != nil {
			return errors.Wrapf(err, "encode record %d", i)
		}
	}
	return nil
}

func detail(r Record) string {
	var parts []string
	if r.Source != "" {
		parts = append(parts, r.Source)
	}
	if r.Seq != 0 {
		parts = append(parts, "seq="+strconv.FormatUint(r.Seq, 10))
	}
	if r.Duration > 0 {
		parts = append(parts, num(r.Duration)+"ms")
	}
	if r.Easing != "" {
		parts = append(parts, r.Easing)
	}
	parts = append(parts, r.Flags...)
	return strings.Join(parts, " ")
}

// num formats v with at most four decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func optNum(show bool, v float64) string {
	if !show {
		return ""
	}
	return num(v)
}
