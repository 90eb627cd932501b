package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cli/browser"
	"github.com/golang/freetype/truetype"

	"epichart/internal/charts"
	"epichart/internal/config"
	"epichart/internal/export"
	"epichart/internal/logger"
	"epichart/internal/reports"
	"epichart/internal/server"
	"epichart/internal/storage"
)

// LocalRunner renders every output for one props file into a directory
type LocalRunner struct {
	Input       string
	Area        string
	DefaultArea string
	OutDir      string
	CDN         string
	Width       int
	Height      int
	Font        *truetype.Font

	log *logger.Logger
}

// Outputs lists the files written by Run, by kind, plus everything the store holds afterwards
type Outputs struct {
	Options  string   `json:"options"`
	Report   string   `json:"report"`
	Page     string   `json:"page"`
	Workbook string   `json:"workbook"`
	PNGs     []string `json:"pngs"`
	Files    []string `json:"files"`
}

const reportFile = "report.html"

// pngFiles maps chart names to their output file names
var pngFiles = map[string]string{
	charts.ChartConfirmedSuspected: "confirmed_suspected.png",
	charts.ChartCuredDead:          "cured_dead.png",
}

// Run loads the input, derives the view and writes all outputs to store
func (lr *LocalRunner) Run(ctx context.Context, store storage.StorageClient) (Outputs, error) {
	startTime := time.Now()
	if lr.log == nil {
		lr.log = logger.GetGlobalLogger().WithComponent("local-runner")
	}

	props, err := server.LoadPropsFile(lr.Input)
	if err != nil {
		return Outputs{}, err
	}
	if lr.Area != "" {
		props.Area = lr.Area
	} else if props.Area == "" {
		props.Area = lr.DefaultArea
	}

	view, err := charts.Derive(props)
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to derive charts: %w", err)
	}

	optionsJSON, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to marshal chart options: %w", err)
	}
	if err := store.StoreFile(ctx, "options.json", optionsJSON); err != nil {
		return Outputs{}, err
	}

	html, err := reports.NewBuilder(lr.CDN).Build(view, startTime)
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to build report: %w", err)
	}
	if err := store.StoreFile(ctx, reportFile, []byte(html)); err != nil {
		return Outputs{}, err
	}

	var page bytes.Buffer
	if err := charts.RenderPage(&page, view, view.ConfirmedSuspected.Title.Text); err != nil {
		return Outputs{}, fmt.Errorf("failed to render page: %w", err)
	}
	if err := store.StoreFile(ctx, "page.html", page.Bytes()); err != nil {
		return Outputs{}, err
	}

	var workbook bytes.Buffer
	if err := export.WriteWorkbook(&workbook, view); err != nil {
		return Outputs{}, fmt.Errorf("failed to export series: %w", err)
	}
	if err := store.StoreFile(ctx, "series.xlsx", workbook.Bytes()); err != nil {
		return Outputs{}, err
	}

	out := Outputs{
		Options:  store.Path("options.json"),
		Report:   store.Path(reportFile),
		Page:     store.Path("page.html"),
		Workbook: store.Path("series.xlsx"),
	}
	for _, c := range view.Charts() {
		var png bytes.Buffer
		if err := charts.RenderPNG(&png, c.Options, charts.PNGOptions{Width: lr.Width, Height: lr.Height, Font: lr.Font}); err != nil {
			return Outputs{}, fmt.Errorf("failed to render %s chart: %w", c.Name, err)
		}
		if err := store.StoreFile(ctx, pngFiles[c.Name], png.Bytes()); err != nil {
			return Outputs{}, err
		}
		out.PNGs = append(out.PNGs, store.Path(pngFiles[c.Name]))
	}

	if out.Files, err = store.ListDir(ctx, ""); err != nil {
		return Outputs{}, err
	}

	lr.log.Info("Charts rendered", map[string]interface{}{
		"area":        view.Area,
		"points":      view.Series.Len(),
		"out_dir":     lr.OutDir,
		"files":       len(out.Files),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})
	return out, nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)

	input := flag.String("input", cfg.DataFile, "props JSON file ({\"data\": ..., \"area\": ...})")
	area := flag.String("area", "", "area to chart; overrides the file's area (default "+cfg.DefaultArea+")")
	outDir := flag.String("out", filepath.Join("reports", time.Now().Format("2006-01-02_15-04-05")), "output directory")
	open := flag.Bool("open", false, "open the report in a browser")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: local-runner -input props.json [-area 湖北] [-out dir] [-open]")
		os.Exit(2)
	}

	font, err := charts.ResolveFont(cfg.ChartFont)
	if err != nil {
		logger.Fatal("Failed to load chart font", err)
	}
	if font == nil {
		logger.Warn("No CJK font found, PNG chart labels may not render; set CHART_FONT")
	}

	store, err := storage.NewLocalStorageClient(*outDir)
	if err != nil {
		logger.Fatal("Failed to open output directory", err)
	}
	defer store.Close()

	runner := &LocalRunner{
		Input:       *input,
		Area:        *area,
		DefaultArea: cfg.DefaultArea,
		OutDir:      *outDir,
		CDN:         cfg.EChartsCDN,
		Width:       cfg.ChartWidth,
		Height:      cfg.ChartHeight,
		Font:        font,
	}
	out, err := runner.Run(ctx, store)
	if err != nil {
		logger.Fatal("Local run failed", err)
	}

	summaryJSON, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(summaryJSON))

	if *open {
		openReport(ctx, store)
	}
}

// openReport opens the stored report in a browser, if one was written
func openReport(ctx context.Context, store storage.StorageClient) {
	ok, err := store.FileExists(ctx, reportFile)
	if err != nil || !ok {
		logger.Warn("No report to open", map[string]interface{}{"path": store.Path(reportFile)})
		return
	}
	if err := browser.OpenFile(store.Path(reportFile)); err != nil {
		logger.Warn("Failed to open browser", map[string]interface{}{"error": err.Error()})
	}
}
