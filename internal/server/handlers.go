package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tealscan/tealscan/internal/clients/casparser"
	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/models"
)

// handleHealth responds to GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig exposes the active engine thresholds (GET /api/config).
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment": s.app.Config.Environment,
		"engine":      s.app.Config.Engine,
	})
}

// asOfDate resolves the reference "today" for a scan request. It is captured
// once per request and passed through the whole pipeline, so repeated runs
// with an explicit as_of are reproducible.
func asOfDate(r *http.Request) (time.Time, error) {
	raw := r.FormValue("as_of")
	if raw == "" {
		raw = r.URL.Query().Get("as_of")
	}
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

// scanUpload runs the upload pipeline shared by the scan endpoints:
// multipart extraction, preflight, parse, analyze. On failure it writes the
// error response and returns nil.
func (s *Server) scanUpload(w http.ResponseWriter, r *http.Request) *models.PortfolioReport {
	maxBytes := int64(s.app.Config.Server.MaxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart upload: "+err.Error())
		return nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A statement file is required")
		return nil
	}
	defer file.Close()

	doc, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Could not read uploaded file")
		return nil
	}

	password := r.FormValue("password")

	asOf, err := asOfDate(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	info, err := s.app.Parser.Preflight(doc, password)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "Upload is not a PDF document", "not_pdf")
		return nil
	}
	s.logger.Debug().
		Int("size_bytes", info.SizeBytes).
		Int("pages", info.Pages).
		Bool("encrypted", info.Encrypted).
		Msg("Upload preflight passed")

	report, err := s.app.ReportService.ScanDocument(r.Context(), doc, password, asOf)
	if err != nil {
		s.writeScanError(w, err)
		return nil
	}
	return report
}

// writeScanError maps pipeline failures onto HTTP responses. Parser
// rejections surface as a single user-facing message with no partial output.
func (s *Server) writeScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, casparser.ErrBadPassword):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity,
			"Could not decrypt the statement. Check your password.", "bad_password")
	case errors.Is(err, casparser.ErrParseFailed):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity,
			"The statement could not be parsed: "+err.Error(), "parse_failed")
	default:
		s.logger.Error().Err(err).Msg("Scan pipeline failed")
		WriteError(w, http.StatusInternalServerError, "Scan failed")
	}
}

// handleScan handles POST /api/scan: upload → full JSON report.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	report := s.scanUpload(w, r)
	if report == nil {
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleScanCSV handles POST /api/scan/csv: upload → CSV attachment.
func (s *Server) handleScanCSV(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	report := s.scanUpload(w, r)
	if report == nil {
		return
	}

	out, err := s.app.ReportService.FormatCSV(report.Scan)
	if err != nil {
		s.logger.Error().Err(err).Msg("CSV rendering failed")
		WriteError(w, http.StatusInternalServerError, "CSV rendering failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tealscan-report.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// handleScanChart handles POST /api/scan/chart: upload → allocation PNG.
func (s *Server) handleScanChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	report := s.scanUpload(w, r)
	if report == nil {
		return
	}

	png, err := s.app.ReportService.RenderAllocationChart(report.Scan)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart rendering failed")
		WriteError(w, http.StatusInternalServerError, "Chart rendering failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleScanJSON handles POST /api/scan/json: a pre-parsed statement in the
// request body, no sidecar round-trip.
func (s *Server) handleScanJSON(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(s.app.Config.Server.MaxUploadSizeMB)<<20)

	stmt, err := casparser.DecodeStatement(r.Body)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_statement")
		return
	}

	asOf, err := asOfDate(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.app.ReportService.ScanStatement(r.Context(), stmt, asOf)
	if err != nil {
		s.writeScanError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
