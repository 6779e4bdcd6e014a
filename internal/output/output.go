// Package output defines the measure enumerations, the (lo, hi) Years
// range, and the JSON-serialisable result shapes produced by the
// driver.
package output

import (
	"fmt"

	"types3go/internal/errs"
	"types3go/internal/sample"
)

// MeasureY is the Y-axis measure: the quantity being accumulated.
type MeasureY int

const (
	MeasureTypes MeasureY = iota
	MeasureTokens
	MeasureHapaxes
	MeasureSamples
	MeasureMarkedTypes
)

func (m MeasureY) String() string {
	switch m {
	case MeasureTypes:
		return "types"
	case MeasureTokens:
		return "tokens"
	case MeasureHapaxes:
		return "hapaxes"
	case MeasureSamples:
		return "samples"
	case MeasureMarkedTypes:
		return "marked types"
	default:
		return "unknown measure"
	}
}

func (m MeasureY) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.jsonName())), nil
}

// ParseMeasureY parses the --measure-y CLI flag.
func ParseMeasureY(s string) (MeasureY, error) {
	switch s {
	case "types":
		return MeasureTypes, nil
	case "tokens":
		return MeasureTokens, nil
	case "hapaxes":
		return MeasureHapaxes, nil
	case "samples":
		return MeasureSamples, nil
	case "marked_types", "marked-types":
		return MeasureMarkedTypes, nil
	default:
		return 0, errs.NewInvalidArgument("unknown measure-y %q, want one of types/tokens/hapaxes/samples/marked_types", s)
	}
}

func (m MeasureY) jsonName() string {
	switch m {
	case MeasureTypes:
		return "types"
	case MeasureTokens:
		return "tokens"
	case MeasureHapaxes:
		return "hapaxes"
	case MeasureSamples:
		return "samples"
	case MeasureMarkedTypes:
		return "marked_types"
	default:
		return "unknown"
	}
}

// MeasureX is the X-axis measure: what a sample's x-increment counts.
type MeasureX int

const (
	MeasureXTokens MeasureX = iota
	MeasureXWords
)

func (m MeasureX) String() string {
	switch m {
	case MeasureXTokens:
		return "tokens"
	case MeasureXWords:
		return "words"
	default:
		return "unknown measure"
	}
}

func (m MeasureX) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// ParseMeasureX parses the --measure-x CLI flag.
func ParseMeasureX(s string) (MeasureX, error) {
	switch s {
	case "tokens":
		return MeasureXTokens, nil
	case "words":
		return MeasureXWords, nil
	default:
		return 0, errs.NewInvalidArgument("unknown measure-x %q, want tokens or words", s)
	}
}

// Years is a half-open [Lo, Hi) year range.
type Years struct {
	Lo sample.Year `json:"lo"`
	Hi sample.Year `json:"hi"`
}

// PrettyPeriod renders a Years range for log lines, e.g. "1920-1929".
func PrettyPeriod(y Years) string {
	return fmt.Sprintf("%d-%d", y.Lo, y.Hi-1)
}

// PrettyPeriods renders a slice of Years ranges, comma separated.
func PrettyPeriods(ys []Years) string {
	s := ""
	for i, y := range ys {
		if i > 0 {
			s += ", "
		}
		s += PrettyPeriod(y)
	}
	return s
}

// OCategory is the JSON-facing, owned form of a category.Category: nil
// when no category was selected, otherwise a {"key", "value"} object.
type OCategory struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AvgResult is the output of the average-at-limit reducer.
type AvgResult struct {
	Low  uint64 `json:"low"`
	High uint64 `json:"high"`
	Iter uint64 `json:"iter"`
}

// PointResult is the output of the compare-with-points reducer for one
// target Point.
type PointResult struct {
	Above uint64 `json:"above"`
	Below uint64 `json:"below"`
	Iter  uint64 `json:"iter"`
}

// OResult is the per-(curve, period) result block.
type OResult struct {
	Period         Years        `json:"period"`
	AverageAtLimit AvgResult    `json:"average_at_limit"`
	VsTime         PointResult  `json:"vs_time"`
	VsCategories   *PointResult `json:"vs_categories,omitempty"`
}

// OCurve is one curve's results across all periods.
type OCurve struct {
	Category *OCategory `json:"category,omitempty"`
	Results  []OResult  `json:"results"`
}

// Output is the top-level JSON document written by types3-stat.
type Output struct {
	Curves          []OCurve   `json:"curves"`
	Periods         []Years    `json:"periods"`
	Years           Years      `json:"years"`
	MeasureY        MeasureY   `json:"measure_y"`
	MeasureX        MeasureX   `json:"measure_x"`
	Iter            uint64     `json:"iter"`
	Limit           uint64     `json:"limit"`
	RestrictSamples *OCategory `json:"restrict_samples,omitempty"`
	RestrictTokens  *OCategory `json:"restrict_tokens,omitempty"`
	MarkTokens      *OCategory `json:"mark_tokens,omitempty"`
	SplitSamples    bool       `json:"split_samples"`
}

// OError is the JSON shape written to an error-report file.
type OError struct {
	Error string `json:"error"`
}

// AvgString renders an AvgResult for debug log lines: "low..high" or a
// single number when low == high.
func AvgString(r AvgResult) string {
	if r.Low == r.High {
		return fmt.Sprintf("%d", r.Low)
	}
	return fmt.Sprintf("%d..%d", r.Low, r.High)
}

// PointString renders a PointResult as "A above, B below, N total".
func PointString(r PointResult) string {
	return fmt.Sprintf("%d above, %d below, %d total", r.Above, r.Below, r.Iter)
}
