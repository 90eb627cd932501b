package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"epichart/internal/charts"
	"epichart/internal/config"
	"epichart/internal/export"
	"epichart/internal/models"
	"epichart/internal/series"
)

// errBadRequest marks body read and decode failures
var errBadRequest = errors.New("bad request")

// HandleRoot serves the report for the current props
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.HandleReport(w, r)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	props := s.Props()
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"props": map[string]interface{}{
			"area":      props.Area,
			"provinces": len(props.Data.ProvincesSeries),
			"country":   len(props.Data.CountrySeries),
		},
	}

	s.writeJSON(w, r, http.StatusOK, health)
}

// HandleProps replaces the current props (PUT/POST) or returns them (GET).
// New props are rejected unless both series order cleanly.
func (s *Server) HandleProps(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, r, http.StatusOK, s.Props())
		return
	case http.MethodPut, http.MethodPost:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxPropsBytes))
	if err != nil {
		s.writeError(w, r, errors.Join(errBadRequest, err))
		return
	}

	props, err := models.DecodeProps(raw)
	if err != nil {
		s.writeError(w, r, errors.Join(errBadRequest, err))
		return
	}

	view, err := charts.Derive(props)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.SetProps(props)
	s.requestLog(r).Info("Props updated", map[string]interface{}{
		"area":   props.Area,
		"points": view.Series.Len(),
	})
	s.writeJSON(w, r, http.StatusOK, view)
}

// HandleOptions returns both chart configurations
func (s *Server) HandleOptions(w http.ResponseWriter, r *http.Request) {
	view, ok := s.derive(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

// HandleAreas lists the selectable areas: the whole country first, then every province seen
func (s *Server) HandleAreas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	areas := append([]string{models.WholeCountry}, s.Props().Data.Areas()...)
	s.writeJSON(w, r, http.StatusOK, areas)
}

// HandleReport serves the HTML report with the summary and both charts
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.derive(w, r)
	if !ok {
		return
	}

	html, err := s.Reports.Build(view, time.Now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

// HandlePage serves both charts as a standalone go-echarts page
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	view, ok := s.derive(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderPage(&buf, view, view.ConfirmedSuspected.Title.Text); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleChartPNG renders one chart as a PNG; ?name= selects it (default confirmed-suspected)
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	view, ok := s.derive(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = charts.ChartConfirmedSuspected
	}
	opt, err := view.Chart(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, opt, charts.PNGOptions{
		Width:  s.Config.ChartWidth,
		Height: s.Config.ChartHeight,
		Font:   s.font,
	}); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// HandleExport serves the current series as an xlsx workbook
func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.derive(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, view); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="series.xlsx"`)
	w.Write(buf.Bytes())
}

// derive rebuilds the view from the current props, with ?area= overriding
// the stored area for this request only
func (s *Server) derive(w http.ResponseWriter, r *http.Request) (charts.View, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return charts.View{}, false
	}

	props := s.Props()
	if area := r.URL.Query().Get("area"); area != "" {
		props.Area = area
	}

	view, err := charts.Derive(props)
	if err != nil {
		s.writeError(w, r, err)
		return charts.View{}, false
	}
	return view, true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.requestLog(r).Error("Failed to encode response", err)
	}
}

// writeError maps oversized bodies to 413, input errors to 400 and everything else to 500
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, series.ErrInvalidDateKey),
		errors.Is(err, models.ErrNegativeCount),
		errors.Is(err, charts.ErrUnknownChart):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.requestLog(r).Error("Request failed", err, map[string]interface{}{"path": r.URL.Path})
	} else {
		s.requestLog(r).Warn("Rejected request", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
	}

	s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
}
