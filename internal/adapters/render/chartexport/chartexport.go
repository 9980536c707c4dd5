// Package chartexport draws a plot.Plot with go-chart for PNG and SVG export.
package chartexport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/okian/alpe/internal/domain/model"
	"github.com/okian/alpe/internal/domain/plot"
)

const (
	placeholderWidth  = 825
	placeholderHeight = 500
	dotWidth          = 5
)

// Render draws p into w in format f. When p is nil or go-chart fails, a
// placeholder PNG is written instead and the returned error wraps
// ErrPlaceholder, so callers know the bytes are PNG regardless of f.
func Render(w io.Writer, p *plot.Plot, f Format) error {
	if f != PNG && f != SVG {
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
	if p == nil {
		if err := Placeholder(w, placeholderWidth, placeholderHeight, "No data to plot"); err != nil {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPlaceholder, plot.ErrNoData)
	}

	ch := newChart(p)
	var buf bytes.Buffer
	renderer := chart.PNG
	if f == SVG {
		renderer = chart.SVG
	}
	if err := ch.Render(renderer, &buf); err != nil {
		if perr := Placeholder(w, int(p.Width), int(p.Height), "Chart unavailable"); perr != nil {
			return errors.Join(err, perr)
		}
		return fmt.Errorf("%w: %w: %w", ErrPlaceholder, ErrRender, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func newChart(p *plot.Plot) chart.Chart {
	doped := chart.ContinuousSeries{Name: plot.DopedLabel(p.Counts)}
	clean := chart.ContinuousSeries{Name: plot.CleanLabel(p.Counts)}
	for _, m := range p.Marks {
		s := &clean
		if m.Doped {
			s = &doped
		}
		s.XValues = append(s.XValues, float64(m.XValue))
		s.YValues = append(s.YValues, model.ClockSeconds(m.YValue))
		s.Style = pointStyle(m.Fill)
	}

	// go-chart rejects series without values
	series := make([]chart.Series, 0, 2)
	for _, s := range []chart.ContinuousSeries{doped, clean} {
		if len(s.XValues) > 0 {
			series = append(series, s)
		}
	}

	xlo, xhi := widen(p.X.Domain())
	ylo, yhi := widen(p.Y.Domain())

	ch := chart.Chart{
		Title:      p.Title,
		Width:      int(p.Width),
		Height:     int(p.Height),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Year",
			Range: &chart.ContinuousRange{Min: xlo, Max: xhi},
			Ticks: ticks(p.XAxis.Ticks),
		},
		YAxis: chart.YAxis{
			Name:  p.YAxisTitle.Text,
			Range: &chart.ContinuousRange{Min: ylo, Max: yhi},
			Ticks: ticks(p.YAxis.Ticks),
		},
		Series: series,
	}
	if p.Legend != nil {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

// pointStyle renders points only, no connecting line.
func pointStyle(fill string) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    dotWidth,
		DotColor:    parseColor(fill),
	}
}

// parseColor accepts "#rrggbb" or "rrggbb"; anything else falls back to
// the go-chart default series color.
func parseColor(s string) drawing.Color {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return chart.DefaultColors[0]
	}
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return chart.DefaultColors[0]
		}
	}
	return drawing.ColorFromHex(hex)
}

func ticks(in []plot.Tick) []chart.Tick {
	out := make([]chart.Tick, len(in))
	for i, t := range in {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// widen pads a degenerate domain; go-chart cannot draw a zero-width range.
func widen(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// Placeholder writes a plain PNG with a hint line near the bottom-left.
func Placeholder(w io.Writer, width, height int, hint string) error {
	if width <= 0 || height <= 0 {
		width, height = placeholderWidth, placeholderHeight
	}
	img := drawHint(blank(width, height), hint)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)
	return img
}

func drawHint(img *image.RGBA, text string) *image.RGBA {
	if strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 60, G: 60, B: 60, A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(b.Max.Y - 8)},
	}
	dr.DrawString(text)
	return img
}
