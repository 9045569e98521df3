
// Package notes drives a verb through both dictionaries and writes its note.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rae-verb-notes/internal/classifier"
	"rae-verb-notes/internal/config"
	"rae-verb-notes/internal/markdown"
	"rae-verb-notes/internal/metrics"
	"rae-verb-notes/internal/models"
	"rae-verb-notes/internal/parser"
	"rae-verb-notes/internal/rewrite"
	"rae-verb-notes/pkg/logger"
)

// Fetcher is the transport the pipeline needs; *crawler.HTTPClient satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error)
}

var ErrInvalidVerb = errors.New("invalid verb")

const (
	sourceUsage      = "usage"
	sourceDefinition = "definition"
)

type Pipeline struct {
	client     Fetcher
	parser     *parser.Parser
	serializer *markdown.Serializer
	classifier *classifier.Classifier
	links      rewrite.Links
	sources    config.Sources
	outputDir  string
	recorder   metrics.Recorder
	log        *logger.Logger
}

// NewPipeline wires a pipeline from cfg. A nil recorder or logger is replaced by a no-op one.
func NewPipeline(client Fetcher, cfg config.Config, rec metrics.Recorder, log *logger.Logger) *Pipeline {
	if rec == nil {
		rec = metrics.Noop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	links := rewrite.DefaultLinks(cfg.Images)
	links.SiteRoot = cfg.Sources.SiteRoot
	links.LinkPrefix = cfg.Sources.LinkPrefix
	return &Pipeline{
		client:     client,
		parser:     parser.New(),
		serializer: markdown.New(),
		classifier: classifier.New(),
		links:      links,
		sources:    cfg.Sources,
		outputDir:  cfg.Paths.OutputDir,
		recorder:   rec,
		log:        log,
	}
}

// Lookup fetches and transforms both entries for verb. The returned
// result carries the state reached; the note is meaningful only when
// Failure is empty. A definition failure only degrades the note.
func (p *Pipeline) Lookup(ctx context.Context, verb string) (models.Note, models.Result) {
	res := models.Result{Verb: verb, State: models.StateNotStarted}
	fail := func(err error) (models.Note, models.Result) {
		res.Failure = p.classifier.Classify(err)
		res.State = p.classifier.State(res.Failure)
		res.Error = err.Error()
		return models.Note{}, res
	}

	if err := validateVerb(verb); err != nil {
		return fail(err)
	}

	res.State = models.StateFetching
	tree, elapsed, err := p.fetch(ctx, sourceUsage, p.sources.UsageBaseURL, verb, parser.UsageEntry)
	res.FetchMs += elapsed.Milliseconds()
	if err != nil {
		return fail(err)
	}
	if !tree.Found() {
		return fail(fmt.Errorf("%s: %w", tree.URL, parser.ErrEntryNotFound))
	}

	tree = rewrite.Apply(tree, p.links.Pass())
	usage, err := p.serializer.Convert(tree.Entry)
	if err != nil {
		return fail(err)
	}
	note := models.Note{Verb: verb, Usage: usage}
	res.State = models.StateEntryFound

	def, elapsed, err := p.definition(ctx, verb)
	res.FetchMs += elapsed.Milliseconds()
	if err != nil {
		p.log.With("verb", verb).Warnf("definition unavailable: %v", err)
		return note, res
	}
	note.Definition, note.DefinitionFound = def, true
	res.Definition = true
	res.State = models.StateDefinitionFetched
	return note, res
}

func (p *Pipeline) definition(ctx context.Context, verb string) (string, time.Duration, error) {
	tree, elapsed, err := p.fetch(ctx, sourceDefinition, p.sources.DefinitionBaseURL, verb, parser.DefinitionEntry)
	if err != nil {
		return "", elapsed, err
	}
	if !tree.Found() {
		return "", elapsed, fmt.Errorf("%s: %w", tree.URL, parser.ErrEntryNotFound)
	}
	tree = rewrite.Apply(tree, rewrite.Definition()...)
	md, err := p.serializer.Convert(tree.Entry)
	return md, elapsed, err
}

func (p *Pipeline) fetch(ctx context.Context, source, base, verb, entry string) (rewrite.Tree, time.Duration, error) {
	pageURL := base + url.PathEscape(verb)
	body, _, contentType, elapsed, err := p.client.Fetch(ctx, pageURL)
	p.recorder.ObserveFetch(source, elapsed, err)
	if err != nil {
		return rewrite.Tree{URL: pageURL}, elapsed, fmt.Errorf("%s %s: %w", source, pageURL, err)
	}
	defer body.Close()
	p.log.With("verb", verb, "source", source).Debugf("fetched %s in %s", pageURL, elapsed)

	tree, err := p.parser.Parse(body, contentType, pageURL, entry)
	if err != nil {
		return rewrite.Tree{URL: pageURL}, elapsed, fmt.Errorf("%s %s: %w", source, pageURL, err)
	}
	return tree, elapsed, nil
}

// Path is where the note for verb is written.
func (p *Pipeline) Path(verb string) string {
	return filepath.Join(p.outputDir, verb+".md")
}

// Write persists the note, replacing any previous file for the verb.
func (p *Pipeline) Write(note models.Note) (string, error) {
	if err := validateVerb(note.Verb); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := p.Path(note.Verb)
	if err := os.WriteFile(path, []byte(note.Render()), 0o644); err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}
	return path, nil
}

func validateVerb(verb string) error {
	if verb == "" || verb == "." || verb == ".." || strings.ContainsAny(verb, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidVerb, verb)
	}
	return nil
}
