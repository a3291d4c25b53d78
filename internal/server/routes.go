package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Scanning
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/scan/csv", s.handleScanCSV)
	mux.HandleFunc("/api/scan/chart", s.handleScanChart)
	mux.HandleFunc("/api/scan/json", s.handleScanJSON)
}
