package alnstats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
)

// Format is an output layout for a Report.
type Format int

const (
	// TextFormat is the human-readable "label: value" listing.
	TextFormat Format = iota
	// TSVFormat is one row per statistic with a header line.
	TSVFormat
	// JSONFormat is an indented JSON array.
	JSONFormat
)

// ParseFormat parses "text", "tsv" or "json".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text", "":
		return TextFormat, nil
	case "tsv":
		return TSVFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return TextFormat, fmt.Errorf("unknown output format %q; must be text, tsv or json", name)
}

// Write renders r in the given format. name identifies the input in the
// text header and is ignored by the other formats.
func (r *Report) Write(w io.Writer, format Format, name string) error {
	switch format {
	case TSVFormat:
		return r.WriteTSV(w)
	case JSONFormat:
		return r.WriteJSON(w)
	default:
		return r.WriteText(w, name)
	}
}

// WriteText writes a header naming the input followed by one "label: value"
// line per statistic.
func (r *Report) WriteText(w io.Writer, name string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Detailed alignment statistics for %s:\n", name)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteByte('\n')
	for _, s := range r.Stats {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (k StatKind) String() string {
	switch k {
	case CountStat:
		return "count"
	case SumStat:
		return "sum"
	default:
		return "derived"
	}
}

// WriteTSV writes columns LABEL, KIND, COUNT, PERCENT and VALUE. Cells that
// do not apply to a statistic are left empty.
func (r *Report) WriteTSV(w io.Writer) error {
	out := tsv.NewWriter(w)
	out.WriteString("LABEL")
	out.WriteString("KIND")
	out.WriteString("COUNT")
	out.WriteString("PERCENT")
	out.WriteString("VALUE")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, s := range r.Stats {
		var count, percent, value string
		if s.Kind == DerivedStat {
			value = strconv.FormatFloat(s.Value, 'f', 2, 64)
		} else {
			count = strconv.FormatUint(s.Count, 10)
		}
		if s.HasPercent {
			percent = strconv.FormatFloat(s.Percent, 'f', 2, 64)
		}
		out.WriteString(s.Label)
		out.WriteString(s.Kind.String())
		out.WriteString(count)
		out.WriteString(percent)
		out.WriteString(value)
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

type jsonStat struct {
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Count   *uint64  `json:"count,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Value   *float64 `json:"value,omitempty"`
}

// WriteJSON writes the statistics as an indented JSON array, keeping the
// report order.
func (r *Report) WriteJSON(w io.Writer) error {
	stats := make([]jsonStat, len(r.Stats))
	for i := range r.Stats {
		s := &r.Stats[i]
		js := jsonStat{Label: s.Label, Kind: s.Kind.String()}
		if s.Kind == DerivedStat {
			js.Value = &s.Value
		} else {
			js.Count = &s.Count
		}
		if s.HasPercent {
			js.Percent = &s.Percent
		}
		stats[i] = js
	}
	js, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	_, err = w.Write(js)
	return err
}
