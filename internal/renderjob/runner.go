// Package renderjob runs the one-shot fetch, draw and write sequence used by
// the render command.
package renderjob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/alpe/internal/adapters/render/chartexport"
	"github.com/okian/alpe/internal/adapters/render/svgplot"
	service "github.com/okian/alpe/internal/app"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/pkg/logger"
	"github.com/okian/alpe/pkg/metrics"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0644
)

// Run loads the dataset, draws the plot and writes it in cfg.Format to
// cfg.OutFile, or to stdout when no file is set.
func Run(ctx context.Context, cfg *Config, stdout io.Writer) error {
	if cfg.Source == "" {
		return ErrSource
	}
	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log := logger.Get().Named("render")
	log.Info(ctx, "starting render job",
		logger.String("source", cfg.Source),
		logger.String("format", string(format)),
		logger.String("out", cfg.OutFile),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithLocation(cfg.Source),
		service.WithLoaderOptions(cfg.Loader...),
		service.WithPlotOptions(cfg.Plot...),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()
	if err := svc.Wait(ctx); err != nil {
		return err
	}
	p, err := svc.Plot(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := render(&buf, p, format); err != nil {
		metrics.RecordRenderError(string(format))
		return fmt.Errorf("render %s: %w", format, err)
	}
	metrics.RecordRender(string(format), float64(time.Since(start).Microseconds())/1000)

	if err := writeOutput(ctx, cfg.OutFile, stdout, buf.Bytes()); err != nil {
		return err
	}
	log.Info(ctx, "render job completed",
		logger.Int("marks", len(p.Marks)),
		logger.Int("bytes", buf.Len()),
	)
	return nil
}

func render(w io.Writer, p *plot.Plot, f Format) error {
	switch f {
	case FormatSVG:
		return svgplot.Render(w, p)
	case FormatHTML:
		return writeHTML(w, p)
	case FormatPNG:
		return chartexport.Render(w, p, chartexport.PNG)
	case FormatChartSVG:
		return chartexport.Render(w, p, chartexport.SVG)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
}

// writeOutput writes data to filename, creating its directory, or to
// stdout when filename is empty.
func writeOutput(ctx context.Context, filename string, stdout io.Writer, data []byte) error {
	if filename == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
		return nil
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: create directory: %w", ErrOutput, err)
		}
	}

	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	logger.Get().Info(ctx, "output saved to file", logger.String("filename", filename))
	return nil
}
