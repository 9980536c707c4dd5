package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const fixture = "../../internal/adapters/loader/testdata/cyclists.json"

func TestRun(t *testing.T) {
	Convey("Given the render command", t, func() {
		var stdout, stderr bytes.Buffer
		ctx := context.Background()

		Convey("When -help is passed", func() {
			code := run(ctx, []string{"-help"}, &stdout, &stderr)

			Convey("Then usage is printed to stdout", func() {
				So(code, ShouldEqual, 0)
				So(stdout.String(), ShouldContainSubstring, "-format string")
			})
		})

		Convey("When an unknown flag is passed", func() {
			code := run(ctx, []string{"-nope"}, &stdout, &stderr)
			So(code, ShouldEqual, 2)
		})

		Convey("When the format is unsupported", func() {
			code := run(ctx, []string{"-source", fixture, "-format", "gif"}, &stdout, &stderr)
			So(code, ShouldEqual, 2)
			So(stderr.String(), ShouldContainSubstring, "gif")
		})

		Convey("When rendering the fixture to stdout", func() {
			code := run(ctx, []string{"-source", fixture}, &stdout, &stderr)

			Convey("Then an SVG with one dot per record is written", func() {
				So(code, ShouldEqual, 0)
				So(stdout.String(), ShouldStartWith, "<svg")
				So(strings.Count(stdout.String(), `class="dot"`), ShouldEqual, 6)
			})
		})

		Convey("When rendering a PNG to a file", func() {
			out := filepath.Join(t.TempDir(), "nested", "chart.png")
			code := run(ctx, []string{"-source", fixture, "-format", "png", "-out", out}, &stdout, &stderr)

			Convey("Then the file holds a PNG and stdout stays empty", func() {
				So(code, ShouldEqual, 0)
				So(stdout.Len(), ShouldEqual, 0)
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				So(string(data[:4]), ShouldEqual, "\x89PNG")
			})
		})

		Convey("When the source does not exist", func() {
			code := run(ctx, []string{"-source", "does-not-exist.json"}, &stdout, &stderr)
			So(code, ShouldEqual, 1)
			So(stdout.Len(), ShouldEqual, 0)
		})
	})
}
