
package notes

import (
	"context"
	"fmt"
	"io"
	"time"

	"rae-verb-notes/internal/classifier"
	"rae-verb-notes/internal/ioformats"
	"rae-verb-notes/internal/metrics"
	"rae-verb-notes/internal/models"
	"rae-verb-notes/pkg/logger"
)

// Summary counts the verbs of one batch by outcome.
type Summary struct {
	Added   int `json:"added"`
	Missing int `json:"missing"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Runner processes verbs one at a time, pausing between them.
type Runner struct {
	Pipeline *Pipeline
	Done     ioformats.Record
	Failed   ioformats.Record
	Pause    time.Duration
	// Force reprocesses verbs already present in Done.
	Force bool
	RunID string
	// Console receives one progress line per verb; Report, when set, one NDJSON result.
	Console  io.Writer
	Report   io.Writer
	Recorder metrics.Recorder
	Log      *logger.Logger
}

// Run processes verbs sequentially. Per-verb failures are recorded and
// never stop the batch; only context cancellation does, in which case the
// summary so far is returned with the context error.
func (r *Runner) Run(ctx context.Context, verbs []string) (Summary, error) {
	var sum Summary
	log := r.Log
	if log == nil {
		log = logger.Discard()
	}
	rec := r.Recorder
	if rec == nil {
		rec = metrics.Noop{}
	}
	console := r.Console
	if console == nil {
		console = io.Discard
	}
	cl := classifier.New()

	done, err := r.Done.Load()
	if err != nil {
		return sum, fmt.Errorf("loading progress record: %w", err)
	}

	processed := 0
	for i, verb := range verbs {
		if _, ok := done[verb]; ok && !r.Force {
			sum.Skipped++
			log.Debugf("skipping %s: already processed", verb)
			continue
		}
		if processed > 0 {
			if err := pause(ctx, r.Pause); err != nil {
				return sum, err
			}
		} else if err := ctx.Err(); err != nil {
			return sum, err
		}
		processed++

		res := r.process(ctx, verb, done, cl, log)
		res.RunID = r.RunID
		switch res.Failure {
		case models.FailureNone:
			sum.Added++
		case models.FailureEntryNotFound:
			sum.Missing++
		default:
			sum.Failed++
		}
		fmt.Fprintf(console, "%03d - %s: %s\n", i+1, verb, cl.Label(res.Failure))
		rec.ObserveLookup(res)
		if r.Report != nil {
			if err := ioformats.WriteNDJSON(r.Report, res); err != nil {
				log.Errorf("writing report line for %s: %v", verb, err)
			}
		}
	}
	return sum, nil
}

func (r *Runner) process(ctx context.Context, verb string, done map[string]struct{}, cl *classifier.Classifier, log *logger.Logger) models.Result {
	vlog := log.With("verb", verb)
	note, res := r.Pipeline.Lookup(ctx, verb)
	if res.Failure != models.FailureNone {
		vlog.Infof("lookup failed (%s): %s", res.Failure, res.Error)
		if err := r.Failed.Append(verb); err != nil {
			vlog.Errorf("recording failure: %v", err)
		}
		return res
	}

	path, err := r.Pipeline.Write(note)
	if err != nil {
		res.Failure = cl.Classify(err)
		res.State = models.StateFailed
		res.Error = err.Error()
		vlog.Errorf("%v", err)
		return res
	}
	res.Path = path
	res.State = models.StateWritten
	if _, ok := done[verb]; !ok {
		if err := r.Done.Append(verb); err != nil {
			vlog.Errorf("recording progress: %v", err)
		}
		done[verb] = struct{}{}
	}
	vlog.Debugf("wrote %s", path)
	return res
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
