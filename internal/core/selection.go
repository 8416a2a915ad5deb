package core

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSelection is returned when a selection names an option the
// UI never offers.
var ErrInvalidSelection = errors.New("invalid selection")

// ChartKind selects the visualization.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartHistogram ChartKind = "hist"
)

// ChartKinds lists the chart kinds in the order the UI offers them.
var ChartKinds = []ChartKind{ChartBar, ChartLine, ChartHistogram}

// Label returns the name shown to users.
func (k ChartKind) Label() string {
	switch k {
	case ChartBar:
		return "Bar Chart"
	case ChartLine:
		return "Line Chart"
	case ChartHistogram:
		return "Histogram"
	default:
		return string(k)
	}
}

// Selection is the full set of user choices for one pipeline run. It is
// rebuilt from the request on every interaction and never stored.
type Selection struct {
	Dedupe     bool         `json:"dedupe"`
	Fill       bool         `json:"fill"`
	FillMethod FillStrategy `json:"fillMethod" validate:"omitempty,oneof=mean median mode ffill"`
	ChartKind  ChartKind    `json:"chartKind" validate:"omitempty,oneof=bar line hist"`
	Column     string       `json:"column" validate:"max=1024"`
}

// DefaultSelection mirrors the initial state of the controls: no
// cleaning, Mean preselected, bar chart.
func DefaultSelection() Selection {
	return Selection{FillMethod: FillMean, ChartKind: ChartBar}
}

// FillStrategy returns the selected strategy, defaulting to Mean.
func (s Selection) FillStrategy() FillStrategy {
	if s.FillMethod == "" {
		return FillMean
	}
	return s.FillMethod
}

// Chart returns the selected chart kind, defaulting to Bar.
func (s Selection) Chart() ChartKind {
	if s.ChartKind == "" {
		return ChartBar
	}
	return s.ChartKind
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every enumerated field holds an offered option.
func (s Selection) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s=%v", fe.Field(), fe.Value())
			}
			return fmt.Errorf("%w: %s", ErrInvalidSelection, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return nil
}

// Query encodes the selection as URL parameters, the form the export and
// chart links carry it in.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set("dedupe", strconv.FormatBool(s.Dedupe))
	q.Set("fill", strconv.FormatBool(s.Fill))
	q.Set("fillMethod", string(s.FillStrategy()))
	q.Set("chartKind", string(s.Chart()))
	if s.Column != "" {
		q.Set("column", s.Column)
	}
	return q
}

// ParseSelectionQuery reads a selection from URL parameters. Missing
// parameters keep their DefaultSelection values.
func ParseSelectionQuery(q url.Values) (Selection, error) {
	sel := DefaultSelection()

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{"dedupe", &sel.Dedupe},
		{"fill", &sel.Fill},
	} {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %s=%q", ErrInvalidSelection, f.key, v)
		}
		*f.dst = b
	}

	if v := q.Get("fillMethod"); v != "" {
		sel.FillMethod = FillStrategy(v)
	}
	if v := q.Get("chartKind"); v != "" {
		sel.ChartKind = ChartKind(v)
	}
	sel.Column = q.Get("column")

	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}
