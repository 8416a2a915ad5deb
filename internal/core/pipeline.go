package core

// pipeline.go runs Ingest, Profile, Clean and chart selection from the raw
// upload. Nothing computed here is cached: every interaction calls Run
// again with the full selection, so a changed option never compounds with
// an earlier cleaned state.

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Warning texts shown in place of chart controls.
const (
	WarnNoNumericColumns = "No numeric columns available for visualization."
	warnNoValuesFormat   = "Column %q has no values to plot."
)

// Service executes the pipeline for stored session uploads.
type Service struct {
	sessions *SessionStore
	limiter  *Limiter
	metrics  *Metrics
}

// NewService wires the store, limiter and metrics together. metrics may be
// nil.
func NewService(sessions *SessionStore, limiter *Limiter, metrics *Metrics) *Service {
	limiter.OnChange(metrics.SetActiveRuns)
	return &Service{sessions: sessions, limiter: limiter, metrics: metrics}
}

// Limiter returns the pipeline limiter, for health output and shutdown.
func (s *Service) Limiter() *Limiter {
	return s.limiter
}

// Sessions returns the upload store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Metrics returns the collectors, possibly nil.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// Store accepts an upload for the session. Only the extension and size are
// checked here; parse errors surface on the next Run.
func (s *Service) Store(sessionID string, u Upload) error {
	format := DetectFormat(u.Filename)
	if format == "" {
		s.metrics.ObserveUpload("", OutcomeRejected)
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, u.Filename)
	}
	if u.Size() == 0 {
		s.metrics.ObserveUpload(format, OutcomeRejected)
		return ErrEmptyFile
	}
	if u.UploadedAt.IsZero() {
		u.UploadedAt = time.Now()
	}

	s.sessions.Put(sessionID, u)
	s.metrics.ObserveUpload(format, OutcomeOK)
	return nil
}

// Reset forgets the session's upload.
func (s *Service) Reset(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Result is everything the page needs to render one pipeline pass.
type Result struct {
	Filename string
	Format   string

	Raw            *Dataset
	RawProfile     Profile
	Cleaned        *Dataset
	CleanedProfile Profile

	// Messages are success notes from the cleaning steps, in order.
	Messages []string

	// NumericColumns lists the chartable columns of the cleaned data.
	NumericColumns []string

	// Selection is the request's selection with the chart kind and column
	// resolved to what was actually charted.
	Selection Selection

	// ChartAvailable is false when Warnings explain why there is no chart.
	ChartAvailable bool
	Warnings       []string
}

// Run re-executes the pipeline for the session's stored upload.
func (s *Service) Run(ctx context.Context, sessionID string, sel Selection) (*Result, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	u, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.RunUpload(ctx, u, sel)
}

// RunUpload executes the pipeline for u under the limiter.
func (s *Service) RunUpload(ctx context.Context, u Upload, sel Selection) (*Result, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		if errors.Is(err, ErrBusy) {
			s.metrics.ObserveRun(OutcomeBusy, 0)
		}
		return nil, fmt.Errorf("acquire pipeline slot: %w", err)
	}
	defer s.limiter.Release()

	start := time.Now()
	res, err := Execute(u, sel)
	if err != nil {
		s.metrics.ObserveRun(OutcomeError, time.Since(start))
		return nil, err
	}
	s.metrics.ObserveRun(OutcomeOK, time.Since(start))
	return res, nil
}

// Execute is the pipeline itself, without limiting or metrics.
func Execute(u Upload, sel Selection) (*Result, error) {
	raw, err := Ingest(u)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", u.Filename, err)
	}

	cleaned, err := Clean(raw, sel)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Filename:       u.Filename,
		Format:         DetectFormat(u.Filename),
		Raw:            raw,
		RawProfile:     ProfileDataset(raw),
		Cleaned:        cleaned.Dataset,
		CleanedProfile: ProfileDataset(cleaned.Dataset),
		Messages:       cleaned.Messages,
		NumericColumns: cleaned.Dataset.NumericColumns(),
	}
	res.resolveChart(sel)
	return res, nil
}

// resolveChart picks the charted column: the selected one when it is
// still numeric, otherwise the first numeric column.
func (r *Result) resolveChart(sel Selection) {
	sel.ChartKind = sel.Chart()
	sel.FillMethod = sel.FillStrategy()

	if len(r.NumericColumns) == 0 {
		sel.Column = ""
		r.Selection = sel
		r.Warnings = append(r.Warnings, WarnNoNumericColumns)
		return
	}

	if !slices.Contains(r.NumericColumns, sel.Column) {
		sel.Column = r.NumericColumns[0]
	}
	r.Selection = sel

	col, _ := r.Cleaned.Column(sel.Column)
	if len(col.Floats()) == 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf(warnNoValuesFormat, sel.Column))
		return
	}
	r.ChartAvailable = true
}

// ChartColumn returns the resolved chart column, or nil when no chart is
// available.
func (r *Result) ChartColumn() *Column {
	if !r.ChartAvailable {
		return nil
	}
	col, _ := r.Cleaned.Column(r.Selection.Column)
	return col
}
