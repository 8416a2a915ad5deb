package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/logging"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/viz"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/web/templates"
)

// handlePipeline re-runs the pipeline with the selection posted as
// datastar signals and patches #results. The resolved column is sent back
// as a signal so the select follows a fallback.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	sel := core.DefaultSelection()
	if err := datastar.ReadSignals(r, &sel); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: read signals: %v", core.ErrInvalidSelection, err))
		return
	}

	logger := logging.WithFields(r.Context(),
		"dedupe", sel.Dedupe,
		"fill", sel.Fill,
		"fill_method", sel.FillMethod,
		"chart", sel.ChartKind,
	)

	res, err := s.service.Run(r.Context(), s.sessionID(r), sel)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		msg := core.MapError(err)
		logError(r, err, statusFor(err), msg)
		if err := sse.PatchElementTempl(templates.ResultsError(msg)); err != nil {
			logger.Error("patch results", "error", err)
		}
		return
	}

	if err := sse.PatchElementTempl(templates.Results(res, s.cfg.Upload.PreviewRows)); err != nil {
		logger.Error("patch results", "error", err)
		return
	}
	if res.Selection.Column != sel.Column {
		if err := sse.MarshalAndPatchSignals(map[string]any{"column": res.Selection.Column}); err != nil {
			logger.Error("patch signals", "error", err)
		}
	}
	logger.Debug("pipeline run", "rows", res.Cleaned.NumRows(), "column", res.Selection.Column)
}

// runForQuery runs the pipeline for the session with the selection in the
// query string.
func (s *Server) runForQuery(r *http.Request) (*core.Result, error) {
	sel, err := core.ParseSelectionQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.service.Run(r.Context(), s.sessionID(r), sel)
}

// handleExport downloads the cleaned data as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.runForQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	body, err := core.ExportCSV(res.Cleaned)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("export: %w", err))
		return
	}

	w.Header().Set("Content-Type", core.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.ExportFilename))
	w.Write(body)

	s.service.Metrics().ObserveExport()
	logging.FromContext(r.Context()).Info("export",
		"filename", res.Filename,
		"rows", res.Cleaned.NumRows(),
	)
}

// handleChart renders the selection's chart as SVG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	res, err := s.runForQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	col := res.ChartColumn()
	if col == nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", viz.ErrNoValues, res.Warnings))
		return
	}

	kind := res.Selection.Chart()
	var buf bytes.Buffer
	if err := viz.Render(&buf, kind, res.Cleaned, col.Name); err != nil {
		s.respondError(w, r, fmt.Errorf("render chart: %w", err))
		return
	}

	w.Header().Set("Content-Type", viz.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())

	s.service.Metrics().ObserveChart(kind)
}

// ProfileResponse is the JSON body of /api/profile.
type ProfileResponse struct {
	Filename string         `json:"filename"`
	Raw      core.Profile   `json:"raw"`
	Cleaned  core.Profile   `json:"cleaned"`
	Messages []string       `json:"messages"`
	Warnings []string       `json:"warnings"`
	Numeric  []string       `json:"numericColumns"`
	Choice   core.Selection `json:"selection"`
}

// handleProfile returns the raw and cleaned profiles as JSON.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	res, err := s.runForQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, ProfileResponse{
		Filename: res.Filename,
		Raw:      res.RawProfile,
		Cleaned:  res.CleanedProfile,
		Messages: nonNil(res.Messages),
		Warnings: nonNil(res.Warnings),
		Numeric:  nonNil(res.NumericColumns),
		Choice:   res.Selection,
	})
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status   string             `json:"status"`
	Pipeline core.LimiterStatus `json:"pipeline"`
	Sessions int                `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, HealthResponse{
		Status:   "ok",
		Pipeline: s.service.Limiter().Status(),
		Sessions: s.service.Sessions().Len(),
	})
}
