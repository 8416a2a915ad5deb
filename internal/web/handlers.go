package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/core"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/logging"
	"github.com/khedkarvaishnavi9595/Data-Cleaner-App/internal/web/templates"
)

// multipartOverhead is the allowance for boundaries and part headers on
// top of the file itself.
const multipartOverhead = 1 << 20

// multipartMemory is how much of a form is parsed in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// handleIndex renders the upload form, plus the workspace when the
// session has an upload. The first render uses the default selection.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.pageData()
	status := http.StatusOK

	if id := s.sessionID(r); id != "" {
		res, err := s.service.Run(r.Context(), id, core.DefaultSelection())
		switch {
		case errors.Is(err, core.ErrNoUpload):
			// Expired or never uploaded: show the form only.
		case err != nil:
			status = statusFor(err)
			msg := core.MapError(err)
			logError(r, err, status, msg)
			page.Alert = &msg
		default:
			page.Result = res
		}
	}

	s.renderPage(w, r, status, page)
}

// handleUpload stores the posted file for the session and redirects back
// to the page, which runs the pipeline on it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.respondError(w, r, fmt.Errorf("parse upload: %w", err))
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", errNoFile, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errNoFile, err))
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		s.respondError(w, r, fmt.Errorf("%w: %d bytes", errFileTooLarge, header.Size))
		return
	}

	payload, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	id, err := s.ensureSession(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	upload := core.Upload{Filename: header.Filename, Data: payload, UploadedAt: time.Now()}
	if err := s.service.Store(id, upload); err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("file uploaded",
		"filename", header.Filename,
		"size", len(payload),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleReset forgets the session's upload.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if id := s.sessionID(r); id != "" {
		s.service.Reset(id)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) pageData() templates.PageData {
	return templates.PageData{
		PreviewRows: s.cfg.Upload.PreviewRows,
		MaxFileSize: s.cfg.Upload.MaxFileSize,
	}
}

// renderPage writes the full page with the given status.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page templates.PageData) {
	if page.PreviewRows == 0 {
		page.PreviewRows = s.cfg.Upload.PreviewRows
		page.MaxFileSize = s.cfg.Upload.MaxFileSize
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Page(page).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}
