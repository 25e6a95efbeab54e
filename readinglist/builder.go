package readinglist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/wiki-research/internal/telemetry"
	"github.com/petasbytes/wiki-research/internal/wiki"
)

// DefaultPath is the reading file, relative to the output sandbox root.
const DefaultPath = "output/research_reading.md"

// Skip reasons.
const (
	ReasonNoResults    = "no_results"
	ReasonSearchError  = "search_error"
	ReasonAmbiguous    = "ambiguous"
	ReasonMissing      = "missing"
	ReasonResolveError = "resolve_error"
)

// ErrEmptyTopic is returned before any lookup or write when the topic is blank.
var ErrEmptyTopic = errors.New("readinglist: topic is empty")

// Lookup is the search-then-resolve pair behind each title.
type Lookup interface {
	Search(ctx context.Context, query string) ([]string, error)
	Resolve(ctx context.Context, title string) (wiki.Page, error)
}

// Appender appends content to a file addressed relative to some root.
type Appender interface {
	AppendFile(relPath, content string) error
}

// Skip records a title that produced no article and why.
type Skip struct {
	Query  string `json:"query"`
	Reason string `json:"reason"`
	Err    string `json:"error,omitempty"`
}

// Report describes one Generate call.
type Report struct {
	Topic    string    `json:"topic"`
	Path     string    `json:"path"`
	Articles []Article `json:"articles"`
	Skipped  []Skip    `json:"skipped"`
}

// Builder resolves titles through Lookup and appends records through Store.
type Builder struct {
	Lookup Lookup
	Store  Appender
	// Path is the reading file relative to the store root; DefaultPath when empty.
	Path string
}

// Generate resolves each title in order, best effort, and appends one record
// for topic. A title that fails to resolve is skipped and reported; it never
// aborts the batch. An empty topic, a cancelled ctx or a failed append return
// an error, and a cancelled run writes nothing.
func (b *Builder) Generate(ctx context.Context, topic string, titles []string) (Report, error) {
	if strings.TrimSpace(topic) == "" {
		return Report{}, ErrEmptyTopic
	}
	path := b.Path
	if path == "" {
		path = DefaultPath
	}

	rep := Report{Topic: topic, Path: path, Articles: []Article{}, Skipped: []Skip{}}
	for i, title := range titles {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("reading list interrupted: %w", err)
		}
		a, skip, ok := b.resolve(ctx, title)
		if !ok {
			rep.Skipped = append(rep.Skipped, skip)
			telemetry.EmitCtx(ctx, "lookup_skipped", map[string]any{
				"index":  i,
				"reason": skip.Reason,
			})
			continue
		}
		rep.Articles = append(rep.Articles, a)
	}

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("reading list interrupted: %w", err)
	}
	rec := Record{Topic: topic, Articles: rep.Articles}
	md := rec.Markdown()
	if err := b.Store.AppendFile(path, md); err != nil {
		return rep, fmt.Errorf("append reading list: %w", err)
	}
	telemetry.EmitCtx(ctx, "record_appended", map[string]any{
		"articles": len(rep.Articles),
		"skipped":  len(rep.Skipped),
		"bytes":    len(md),
	})
	return rep, nil
}

// resolve takes the first search candidate for title and resolves it.
func (b *Builder) resolve(ctx context.Context, title string) (Article, Skip, bool) {
	candidates, err := b.Lookup.Search(ctx, title)
	if err != nil {
		return Article{}, Skip{Query: title, Reason: ReasonSearchError, Err: err.Error()}, false
	}
	if len(candidates) == 0 {
		return Article{}, Skip{Query: title, Reason: ReasonNoResults}, false
	}

	page, err := b.Lookup.Resolve(ctx, candidates[0])
	if err != nil {
		reason := ReasonResolveError
		switch {
		case errors.Is(err, wiki.ErrAmbiguous):
			reason = ReasonAmbiguous
		case errors.Is(err, wiki.ErrPageMissing):
			reason = ReasonMissing
		}
		return Article{}, Skip{Query: title, Reason: reason, Err: err.Error()}, false
	}
	return Article{Title: page.Title, URL: page.URL}, Skip{}, true
}
