package loader_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/alpe/internal/adapters/loader"
	"github.com/okian/alpe/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func fixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "cyclists.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestHTTPSource_Fetch(t *testing.T) {
	body := fixture(t)

	Convey("Given a server returning the dataset", t, func() {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		Convey("When fetching", func() {
			recs, err := loader.NewHTTPSource(srv.URL).Fetch(context.Background())

			Convey("Then every record is decoded with one request", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 6)
				So(recs[0].Name, ShouldEqual, "Marco Pantani")
				So(recs[0].Time, ShouldEqual, "36:50")
				So(recs[0].Year, ShouldEqual, 1995)
				So(recs[4].Doping, ShouldEqual, "")
				So(hits, ShouldEqual, 1)
			})
		})

		Convey("When the payload exceeds the size limit", func() {
			_, err := loader.NewHTTPSource(srv.URL, loader.WithMaxBodyBytes(64)).Fetch(context.Background())
			So(errors.Is(err, loader.ErrTooLarge), ShouldBeTrue)
		})
	})

	Convey("Given a server answering with an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := loader.NewHTTPSource(srv.URL).Fetch(context.Background())
		So(errors.Is(err, loader.ErrStatus), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "404")
	})

	Convey("Given a server answering with invalid JSON", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		}))
		defer srv.Close()

		_, err := loader.NewHTTPSource(srv.URL).Fetch(context.Background())
		So(errors.Is(err, loader.ErrDecode), ShouldBeTrue)
	})

	Convey("Given a server slower than the timeout", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := loader.NewHTTPSource(srv.URL, loader.WithTimeout(50*time.Millisecond)).Fetch(context.Background())
		So(errors.Is(err, loader.ErrRequest), ShouldBeTrue)
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := loader.NewHTTPSource(url).Fetch(context.Background())
		So(errors.Is(err, loader.ErrRequest), ShouldBeTrue)
	})
}

func TestFileSource_Fetch(t *testing.T) {
	Convey("Given the fixture file", t, func() {
		src := loader.NewFileSource(filepath.Join("testdata", "cyclists.json"))

		Convey("Then it decodes like the HTTP source", func() {
			recs, err := src.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 6)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := loader.NewFileSource("testdata/missing.json").Fetch(context.Background())
		So(errors.Is(err, loader.ErrRequest), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.NewFileSource(filepath.Join("testdata", "cyclists.json")).Fetch(ctx)
		So(err, ShouldNotBeNil)
	})
}

func TestNew(t *testing.T) {
	Convey("Given dataset locations", t, func() {
		Convey("Then http URLs use the HTTP source", func() {
			src, err := loader.New("https://example.com/data.json")
			So(err, ShouldBeNil)
			_, ok := src.(*loader.HTTPSource)
			So(ok, ShouldBeTrue)
		})

		Convey("And file URLs and paths use the file source", func() {
			src, err := loader.New("file:///tmp/data.json")
			So(err, ShouldBeNil)
			So(src.Location(), ShouldEqual, "/tmp/data.json")

			src, err = loader.New("testdata/cyclists.json")
			So(err, ShouldBeNil)
			_, ok := src.(*loader.FileSource)
			So(ok, ShouldBeTrue)
		})

		Convey("And empty or unsupported locations are rejected", func() {
			_, err := loader.New("  ")
			So(errors.Is(err, loader.ErrLocation), ShouldBeTrue)
			_, err = loader.New("ftp://example.com/data.json")
			So(errors.Is(err, loader.ErrLocation), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a source with one malformed record", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.json")
		data := `[{"Time":"36:40","Year":1994,"Doping":""},{"Time":"3640","Year":1995,"Doping":"Admitted"}]`
		So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)

		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		defer func() { _ = logger.Init() }()

		Convey("When loading", func() {
			recs, err := loader.Load(context.Background(), loader.NewFileSource(path))

			Convey("Then records are enriched and the malformed one is flagged", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Malformed, ShouldBeFalse)
				So(recs[0].TimeOfDay.Minute(), ShouldEqual, 36)
				So(recs[1].Malformed, ShouldBeTrue)
			})

			Convey("And the load is logged with its id", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "dataset fetched")
				So(out, ShouldContainSubstring, "malformed=1")
				So(out, ShouldContainSubstring, "load_id=")
			})
		})
	})

	Convey("Given a failing source", t, func() {
		_, err := loader.Load(context.Background(), loader.NewFileSource("testdata/missing.json"))
		So(errors.Is(err, loader.ErrRequest), ShouldBeTrue)
	})
}
