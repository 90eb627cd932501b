package server

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"

	"epichart/internal/charts"
	"epichart/internal/config"
	"epichart/internal/logger"
	"epichart/internal/models"
	"epichart/internal/reports"
)

// maxPropsBytes bounds the size of a props upload
const maxPropsBytes = 16 << 20

// Server hosts the chart view. It keeps the last received props and
// re-derives every output from them on each request.
type Server struct {
	Config  *config.Config
	Reports *reports.Builder
	// MaxPropsBytes bounds a props upload; larger bodies get 413
	MaxPropsBytes int64

	log      *logger.Logger
	mu       sync.RWMutex
	props    models.Props
	watchers *watchHub
	font     *truetype.Font
}

// NewServer creates a server, seeding its props from cfg.DataFile when set
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		Config:   cfg,
		Reports:  reports.NewBuilder(cfg.EChartsCDN),
		log:      logger.GetGlobalLogger().WithComponent("server"),
		props:    models.DefaultProps(),
		watchers: newWatchHub(),
	}
	s.props.Area = cfg.DefaultArea

	font, err := charts.ResolveFont(cfg.ChartFont)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart font: %w", err)
	}
	if font == nil {
		s.log.Warn("No CJK font found, PNG chart labels may not render; set CHART_FONT")
	}
	s.font = font

	if cfg.DataFile != "" {
		props, err := LoadPropsFile(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		if props.Area == "" {
			props.Area = cfg.DefaultArea
		}
		s.props = props
		s.log.Info("Loaded initial props", map[string]interface{}{
			"file":      cfg.DataFile,
			"area":      props.Area,
			"provinces": len(props.Data.ProvincesSeries),
			"country":   len(props.Data.CountrySeries),
		})
	}

	return s, nil
}

// LoadPropsFile reads and validates a props document from disk
func LoadPropsFile(path string) (models.Props, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Props{}, fmt.Errorf("failed to read props file %s: %w", path, err)
	}
	props, err := models.DecodeProps(raw)
	if err != nil {
		return models.Props{}, fmt.Errorf("invalid props file %s: %w", path, err)
	}
	if _, err := charts.Derive(props); err != nil {
		return models.Props{}, fmt.Errorf("invalid props file %s: %w", path, err)
	}
	return props, nil
}

// Props returns the current props. The maps are shared and must not be modified.
func (s *Server) Props() models.Props {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props
}

// SetProps replaces the current props and wakes every watcher
func (s *Server) SetProps(props models.Props) {
	s.mu.Lock()
	s.props = props
	s.mu.Unlock()

	s.watchers.Notify()
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/props", s.HandleProps)
	mux.HandleFunc("/options", s.HandleOptions)
	mux.HandleFunc("/areas", s.HandleAreas)
	mux.HandleFunc("/report", s.HandleReport)
	mux.HandleFunc("/page", s.HandlePage)
	mux.HandleFunc("/chart.png", s.HandleChartPNG)
	mux.HandleFunc("/export.xlsx", s.HandleExport)
	mux.HandleFunc("/watch", s.HandleWatch)
	mux.HandleFunc("/", s.HandleRoot)

	return s.requestLogger(mux)
}

// Close disconnects open watchers
func (s *Server) Close() error {
	s.watchers.Close()
	return nil
}
