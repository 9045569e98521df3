package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"rae-verb-notes/internal/config"
	"rae-verb-notes/internal/crawler"
	"rae-verb-notes/internal/ioformats"
	"rae-verb-notes/internal/models"
	"rae-verb-notes/internal/notes"
	"rae-verb-notes/pkg/logger"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"verbnotes.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Run struct {
		List   string        `short:"l" help:"Flat verb list to process instead of the next queued batch" type:"existingfile"`
		Force  bool          `short:"f" help:"Reprocess verbs already in the progress record"`
		Report string        `short:"r" help:"Write one NDJSON result per verb to this file"`
		Pause  time.Duration `help:"Override the pause between verbs; negative keeps the configured one" default:"-1s"`
	} `cmd:"" default:"1" help:"Process the next batch of verbs and write their notes"`

	Show struct {
		Verb string `arg:"" help:"Verb to look up"`
	} `cmd:"" help:"Print the note for one verb without writing anything"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("verbnotes"),
		kong.Description("Build Spanish verb notes from the RAE dictionaries."),
	)
	l := logger.NewWithWriter(os.Stderr, CLI.Verbose)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		l.Errorf("load configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "run":
		err = run(ctx, cfg, l)
	case "show <verb>":
		err = show(ctx, cfg, l, CLI.Show.Verb)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		l.Errorf("%v", err)
		os.Exit(1)
	}
}

func newClient(cfg config.Config) *crawler.HTTPClient {
	return crawler.NewHTTPClient(cfg.HTTP.Timeout, cfg.HTTP.DialTimeout, cfg.HTTP.SizeCap).WithUserAgent(cfg.HTTP.UserAgent)
}

func run(ctx context.Context, cfg config.Config, l *logger.Logger) error {
	if CLI.Run.Pause >= 0 {
		cfg.Pause = CLI.Run.Pause
	}

	var (
		verbs []string
		queue *ioformats.Queue
		err   error
	)
	if CLI.Run.List != "" {
		verbs, err = ioformats.ReadVerbs(CLI.Run.List)
		if err != nil {
			return fmt.Errorf("read verb list: %w", err)
		}
	} else {
		queue = &ioformats.Queue{IndexPath: cfg.ListPath(cfg.Paths.IndexFile)}
		var batch string
		batch, verbs, err = queue.Next()
		if err != nil {
			return err
		}
		l.Infof("processing batch %s (%d verbs)", batch, len(verbs))
	}

	runID := uuid.NewString()
	runner := &notes.Runner{
		Pipeline: notes.NewPipeline(newClient(cfg), cfg, nil, l),
		Done:     ioformats.Record{Path: cfg.ListPath(cfg.Paths.DoneFile)},
		Failed:   ioformats.Record{Path: cfg.ListPath(cfg.Paths.FailedFile)},
		Pause:    cfg.Pause,
		Force:    CLI.Run.Force,
		RunID:    runID,
		Console:  os.Stdout,
		Log:      l.With("run", runID),
	}
	if CLI.Run.Report != "" {
		f, err := os.Create(CLI.Run.Report)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		runner.Report = f
	}

	sum, err := runner.Run(ctx, verbs)
	if err != nil {
		// interrupted: the batch stays queued so the next run resumes it
		l.Warnf("run interrupted: %v", err)
	} else if queue != nil {
		if err := queue.Pop(); err != nil {
			return fmt.Errorf("update queue index: %w", err)
		}
	}

	l.Debugf("summary: added=%d missing=%d failed=%d skipped=%d", sum.Added, sum.Missing, sum.Failed, sum.Skipped)
	fmt.Printf("Se han añadido %d verbos.\nTerminado\n", sum.Added)
	return nil
}

func show(ctx context.Context, cfg config.Config, l *logger.Logger, verb string) error {
	p := notes.NewPipeline(newClient(cfg), cfg, nil, l)
	note, res := p.Lookup(ctx, verb)
	if res.Failure != models.FailureNone {
		return fmt.Errorf("%s: %s", verb, res.Error)
	}
	fmt.Println(note.Render())
	return nil
}
