// Command outline converts CAD drawings into building outline
// estimates and stores them through the configured backend.
//
// Usage:
//
//	outline [flags] drawing.dxf [more.dxf ...]
//	outline -list
//	outline -show <drawingID>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/draftline/outline/internal/config"
	"github.com/draftline/outline/internal/database"
	"github.com/draftline/outline/internal/influx"
	"github.com/draftline/outline/internal/logging"
	intOtel "github.com/draftline/outline/internal/otel"
	"github.com/draftline/outline/internal/perimeter"
	"github.com/draftline/outline/internal/pipeline"
	"github.com/draftline/outline/internal/storage"
	"github.com/draftline/outline/internal/worker"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

const appName = "outline"

func main() {
	configDir := flag.String("config", ".", "directory containing outline.cfg.json")
	list := flag.Bool("list", false, "list stored drawings and exit")
	show := flag.Uint("show", 0, "print the stored outline for a drawing ID and exit")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent conversions")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s %s (built %s)\n", appName, Version, BuildDate)
		return
	}

	if err := run(*configDir, *list, *show, *workers, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configDir string, list bool, show uint, workers int, files []string) error {
	sessionStart := time.Now()

	slogManager := logging.NewSlogManager()
	slogManager.ContextProvider = func() []slog.Attr {
		return []slog.Attr{slog.String("session", sessionStart.Format("20060102_150405"))}
	}
	slogManager.Setup(nil, "info", nil)
	logger := slogManager.Logger()

	if err := config.Load(configDir); err != nil {
		logger.Warn("Failed to load config, using defaults", "error", err)
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, appName, sessionStart)
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		logger.Error("Failed to open log file, logging to stdout", "error", err, "path", logFilePath)
		logFile = nil
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var otelProvider *intOtel.Provider
	if viper.GetBool("otel.enabled") && logFile != nil {
		otelProvider, err = intOtel.New(intOtel.Config{
			Enabled:     true,
			ServiceName: viper.GetString("otel.serviceName"),
			LogWriter:   logFile,
			Endpoint:    viper.GetString("otel.endpoint"),
			Insecure:    viper.GetBool("otel.insecure"),
		})
		if err != nil {
			logger.Error("Failed to initialize OTel provider", "error", err)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if otelProvider != nil {
		otelLogProvider = otelProvider.LoggerProvider()
		defer otelProvider.Shutdown(context.Background())
	}
	var logWriter io.Writer
	if logFile != nil {
		logWriter = logFile
	}
	slogManager.Setup(logWriter, viper.GetString("logLevel"), otelLogProvider)
	logger = slogManager.Logger()
	if logFile != nil {
		logger.Info("Logging to file", "path", logFilePath)
	}

	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var influxManager *influx.Manager
	if viper.GetBool("influx.enabled") {
		backupPath := filepath.Join(logsDir, fmt.Sprintf("%s_metrics_%s.log.gz", appName, sessionStart.Format("20060102_150405")))
		influxManager = influx.NewManager(zlog, backupPath)
		if err := influxManager.Connect(); err != nil {
			logger.Error("Failed to connect to InfluxDB", "error", err)
			influxManager = nil
		} else {
			defer influxManager.Close()
		}
	}

	storageCfg := config.Storage()

	var dbManager *database.Manager
	if storageCfg.Backend != "memory" {
		dbManager = database.NewManager(zlog)
		if err := dbManager.Connect(); err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
	}

	backend, err := storage.NewBackend(storageCfg, dbManager)
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Failed to close storage backend", "error", err)
		}
	}()

	switch {
	case list:
		return listDrawings(backend)
	case show != 0:
		return showOutline(backend, show)
	}

	if len(files) == 0 {
		flag.Usage()
		return fmt.Errorf("no drawing files given")
	}

	return convertFiles(logger, backend, influxManager, workers, files)
}

func convertFiles(logger *slog.Logger, backend storage.Backend, metrics *influx.Manager, workers int, files []string) error {
	unitsPerMillimeter := viper.GetFloat64("drawing.unitsPerMillimeter")

	p, err := pipeline.New(logger, unitsPerMillimeter, metrics)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}

	pool := worker.NewPool(logger, p, backend, workers)
	outcomes := pool.Run(context.Background(), files)

	var failed int
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			fmt.Printf("%s: FAILED: %v\n", outcome.File, outcome.Err)
			continue
		}
		snap, err := backend.LoadOutline(outcome.DrawingID)
		if err != nil {
			return fmt.Errorf("reloading outline for %s: %w", outcome.File, err)
		}

		fmt.Printf("%s (drawing %d)\n", outcome.File, outcome.DrawingID)
		fmt.Printf("  entities:  %d lines, %d polylines, %d vertices\n",
			outcome.Stats.Meta.LineCount, outcome.Stats.Meta.PolylineCount, outcome.Stats.Meta.VertexCount)
		fmt.Printf("  outline:   %d points, %d segments, closed=%t\n",
			len(snap.Points), len(snap.Segments), snap.IsClosed)
		fmt.Printf("  perimeter: %.3f\n", outcome.Stats.Perimeter)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d drawings failed", failed, len(files))
	}
	return nil
}

func listDrawings(backend storage.Backend) error {
	metas, err := backend.ListDrawings()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no drawings stored")
		return nil
	}
	fmt.Printf("%-6s %-30s %8s %10s %9s\n", "ID", "FILE", "LINES", "POLYLINES", "VERTICES")
	for _, m := range metas {
		fmt.Printf("%-6d %-30s %8d %10d %9d\n", m.ID, m.FileName, m.LineCount, m.PolylineCount, m.VertexCount)
	}
	return nil
}

func showOutline(backend storage.Backend, drawingID uint) error {
	snap, err := backend.LoadOutline(drawingID)
	if err != nil {
		return err
	}

	model := perimeter.New(nil)
	model.Restore(snap)
	min, max := model.BoundingBox()
	center := model.Center()

	fmt.Printf("drawing %d: %d points, %d segments, closed=%t\n",
		drawingID, len(snap.Points), len(snap.Segments), snap.IsClosed)
	fmt.Printf("  perimeter: %.3f\n", model.Perimeter())
	fmt.Printf("  bounds:    (%.3f, %.3f) to (%.3f, %.3f), center (%.3f, %.3f)\n",
		min.X, min.Y, max.X, max.Y, center.X, center.Y)
	for i, seg := range snap.Segments {
		start := snap.Points[seg.StartIndex]
		end := snap.Points[seg.EndIndex]
		override := ""
		if seg.ManualLengthOverride {
			override = " (manual)"
		}
		fmt.Printf("  %2d: (%.3f, %.3f) -> (%.3f, %.3f)  length %.3f  angle %.1f%s\n",
			i, start.X, start.Y, end.X, end.Y, seg.Length, seg.Angle, override)
	}
	return nil
}
