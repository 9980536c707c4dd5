package renderjob_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/alpe/internal/adapters/render/chartexport"
	service "github.com/okian/alpe/internal/app"
	"github.com/okian/alpe/internal/domain/plot"
	"github.com/okian/alpe/internal/renderjob"
	"github.com/okian/alpe/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func fixture() string {
	return filepath.Join("..", "adapters", "loader", "testdata", "cyclists.json")
}

func TestParseFormat(t *testing.T) {
	Convey("Given format flag values", t, func() {
		for in, want := range map[string]renderjob.Format{
			"":          renderjob.FormatSVG,
			"svg":       renderjob.FormatSVG,
			"PNG":       renderjob.FormatPNG,
			"html":      renderjob.FormatHTML,
			"chart-svg": renderjob.FormatChartSVG,
		} {
			f, err := renderjob.ParseFormat(in)
			So(err, ShouldBeNil)
			So(f, ShouldEqual, want)
		}

		_, err := renderjob.ParseFormat("pdf")
		So(errors.Is(err, renderjob.ErrFormat), ShouldBeTrue)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a render job over the fixture dataset", t, func() {
		ctx := context.Background()
		cfg := &renderjob.Config{Source: fixture(), Format: renderjob.FormatSVG, Timeout: 5 * time.Second}
		var out bytes.Buffer

		Convey("When rendering svg to stdout", func() {
			err := renderjob.Run(ctx, cfg, &out)

			Convey("Then a standalone svg is written", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldStartWith, "<svg")
				So(strings.Count(out.String(), `class="dot"`), ShouldEqual, 6)
				So(out.String(), ShouldContainSubstring, "No doping [2]")
			})
		})

		Convey("When the format is left empty or given in upper case", func() {
			for _, f := range []renderjob.Format{"", "SVG", " svg "} {
				out.Reset()
				cfg.Format = f
				err := renderjob.Run(ctx, cfg, &out)

				So(err, ShouldBeNil)
				So(out.String(), ShouldStartWith, "<svg")
				So(cfg.Format, ShouldEqual, f)
			}
		})

		Convey("When rendering html", func() {
			cfg.Format = renderjob.FormatHTML
			err := renderjob.Run(ctx, cfg, &out)

			Convey("Then the page inlines the chart and the tooltip script", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, `id="tooltip"`)
				So(out.String(), ShouldContainSubstring, "circle.dot")
				So(out.String(), ShouldContainSubstring, ".tooltip")
				So(out.String(), ShouldContainSubstring, plot.DefaultTitle)
			})
		})

		Convey("When rendering png to a nested file", func() {
			dir := t.TempDir()
			cfg.Format = renderjob.FormatPNG
			cfg.OutFile = filepath.Join(dir, "out", "chart.png")
			err := renderjob.Run(ctx, cfg, &out)

			Convey("Then the file holds a png and stdout stays empty", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 0)
				f, ferr := os.Open(cfg.OutFile)
				So(ferr, ShouldBeNil)
				defer f.Close()
				_, derr := png.DecodeConfig(f)
				So(derr, ShouldBeNil)
			})
		})

		Convey("When rendering the chart library svg with layout options", func() {
			cfg.Format = renderjob.FormatChartSVG
			cfg.Plot = []plot.Option{plot.WithYearPad(0), plot.WithTitles("Custom", "")}
			err := renderjob.Run(ctx, cfg, &out)

			Convey("Then the export uses them", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "<svg")
				So(out.String(), ShouldContainSubstring, "Custom")
			})
		})
	})

	Convey("Given invalid jobs", t, func() {
		ctx := context.Background()
		var out bytes.Buffer

		Convey("Then a missing source is rejected", func() {
			err := renderjob.Run(ctx, &renderjob.Config{}, &out)
			So(errors.Is(err, renderjob.ErrSource), ShouldBeTrue)
		})

		Convey("Then an unknown format is rejected before fetching", func() {
			err := renderjob.Run(ctx, &renderjob.Config{Source: fixture(), Format: "gif"}, &out)
			So(errors.Is(err, renderjob.ErrFormat), ShouldBeTrue)
		})

		Convey("Then a missing file surfaces as a failed load", func() {
			err := renderjob.Run(ctx, &renderjob.Config{Source: "does-not-exist.json", Format: renderjob.FormatSVG}, &out)
			So(errors.Is(err, service.ErrLoadFailed), ShouldBeTrue)
			So(out.Len(), ShouldEqual, 0)
		})

		Convey("Then an empty dataset has nothing to render", func() {
			empty := filepath.Join(t.TempDir(), "empty.json")
			So(os.WriteFile(empty, []byte("[]"), 0o600), ShouldBeNil)
			err := renderjob.Run(ctx, &renderjob.Config{Source: empty, Format: renderjob.FormatPNG}, &out)
			So(errors.Is(err, plot.ErrNoData), ShouldBeTrue)
			So(errors.Is(err, chartexport.ErrPlaceholder), ShouldBeFalse)
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var out bytes.Buffer
		renderjob.ShowHelp(&out)
		So(out.String(), ShouldContainSubstring, "-format")
		So(out.String(), ShouldContainSubstring, "-year-pad")
		So(out.String(), ShouldContainSubstring, "ALPE_CONFIG")
	})
}
