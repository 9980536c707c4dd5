package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/alpe/internal/config"
	"github.com/okian/alpe/internal/renderjob"
	"github.com/okian/alpe/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the job and returns the process exit code.
// Logs go to stderr so stdout can carry the rendered output.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}

	// Load configuration (defaults -> optional file -> env); flags override it
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		source  = fs.String("source", cfg.DataURL, "Dataset URL or file path")
		outFile = fs.String("out", "", "Output file (default: stdout)")
		format  = fs.String("format", string(renderjob.FormatSVG), "svg | png | html | chart-svg")
		timeout = fs.Duration("timeout", cfg.FetchTimeout(), "Bound on fetch and render")
		yearPad = fs.Int("year-pad", cfg.YearPad, "Years of padding on each side of the x axis")
		help    = fs.Bool("help", false, "Show help")
	)
	fs.Usage = func() { renderjob.ShowHelp(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		renderjob.ShowHelp(stdout)
		return 0
	}

	f, err := renderjob.ParseFormat(*format)
	if err != nil {
		_, _ = io.WriteString(stderr, err.Error()+"\n")
		return 2
	}

	cfg.YearPad = *yearPad
	if *timeout > 0 {
		cfg.FetchTimeoutMS = int(timeout.Milliseconds())
	}

	job := &renderjob.Config{
		Source:  *source,
		OutFile: *outFile,
		Format:  f,
		Timeout: *timeout + renderSlack,
		Plot:    cfg.PlotOptions(),
		Loader:  cfg.LoaderOptions(),
	}

	if err := renderjob.Run(ctx, job, stdout); err != nil {
		logger.Get().Error(ctx, "render failed", logger.Error(err))
		return 1
	}
	return 0
}

// renderSlack leaves room for drawing after a fetch that used its full timeout.
const renderSlack = 5 * time.Second
