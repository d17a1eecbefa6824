package stats

import (
	"encoding/json"
	"io"
	"math"
	"text/template"

	"github.com/pkg/errors"
)

// Summary is a snapshot of the sampled statistics of one alignment file.
type Summary struct {
	Sample             string           `json:"sample,omitempty"`
	Sequencer          string           `json:"sequencer,omitempty"`
	SingleEnded        bool             `json:"single_ended"`
	Orientations       Orientations     `json:"orientations"`
	Counts             OrientationTally `json:"orientation_counts"`
	DiscordantFraction fraction         `json:"discordant_fraction"`
	InsertSizes        DistSummary      `json:"insert_sizes"`
	ReadLengths        DistSummary      `json:"read_lengths"`
	Mismatches         int              `json:"mismatch_samples"`
	Error              string           `json:"error,omitempty"`
}

// DistSummary describes a sampled distribution. Statistics are only set when
// enough values were sampled.
type DistSummary struct {
	Samples int       `json:"samples"`
	Mean    *fraction `json:"mean"`
	Stddev  *fraction `json:"stddev"`
	Max     *fraction `json:"max,omitempty"`
	P99     *fraction `json:"p99,omitempty"`
}

func optional(v float64, ok bool) *fraction {
	if !ok {
		return nil
	}
	f := fraction(v)
	return &f
}

// Summary returns a snapshot of rs.
func (rs *ReadStatistics) Summary() *Summary {
	s := &Summary{
		SingleEnded:        rs.Orientations.IsAny(),
		Orientations:       rs.Orientations,
		Counts:             rs.Tally,
		DiscordantFraction: fraction(rs.DiscordantFraction),
		InsertSizes: DistSummary{
			Samples: len(rs.InsertSizes),
			Mean:    optional(rs.MeanInsertSize()),
			Stddev:  optional(rs.StddevInsertSize()),
			Max:     optional(rs.MaxInsertSize()),
		},
		ReadLengths: DistSummary{
			Samples: len(rs.ReadLengths),
			Mean:    optional(rs.MeanReadLength()),
			Stddev:  optional(rs.StddevReadLength()),
			P99:     optional(rs.ReadLengthUpperQuantile()),
		},
		Mismatches: len(rs.Mismatches),
	}
	if rs.err != nil {
		s.Error = rs.err.Error()
		s.DiscordantFraction = fraction(math.NaN())
	}
	return s
}

const summaryTemplate = `SAMPLE	{{.Sample}}
SEQUENCER	{{.Sequencer}}
ORIENTATIONS	{{range $i, $o := .Orientations}}{{if $i}},{{end}}{{$o}}{{end}}
DISCORDANT_FRACTION	{{.DiscordantFraction}}
INSERT_SIZE_SAMPLES	{{.InsertSizes.Samples}}
INSERT_SIZE_MEAN	{{with .InsertSizes.Mean}}{{.}}{{else}}NA{{end}}
INSERT_SIZE_STDDEV	{{with .InsertSizes.Stddev}}{{.}}{{else}}NA{{end}}
READ_LENGTH_SAMPLES	{{.ReadLengths.Samples}}
READ_LENGTH_MEAN	{{with .ReadLengths.Mean}}{{.}}{{else}}NA{{end}}
READ_LENGTH_P99	{{with .ReadLengths.P99}}{{.}}{{else}}NA{{end}}
`

// Output writes s as tab separated lines to out.
func (s *Summary) Output(out io.Writer) error {
	o := template.Must(template.New("summary").Parse(summaryTemplate))
	return o.Execute(out, s)
}

// ReadSummary decodes a Summary written as JSON.
func ReadSummary(in io.Reader) (*Summary, error) {
	s := &Summary{}
	if err := json.NewDecoder(in).Decode(s); err != nil {
		return nil, errors.Wrap(err, "decoding summary")
	}
	return s, nil
}
