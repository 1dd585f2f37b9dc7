package loader

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/leapstack-labs/svclint/pkg/lint"
	"golang.org/x/sync/errgroup"
)

// Loader discovers and parses service documents.
type Loader struct {
	logger      *slog.Logger
	concurrency int
}

// New creates a Loader. A nil logger discards output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		logger:      logger,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// WithConcurrency sets how many documents are parsed at once (minimum 1).
func (l *Loader) WithConcurrency(n int) *Loader {
	if n < 1 {
		n = 1
	}
	l.concurrency = n
	return l
}

// LoadAll parses files concurrently. The returned documents keep the order
// of files. The first parse error cancels the remaining work.
func (l *Loader) LoadAll(ctx context.Context, files []File) ([]*Document, error) {
	docs := make([]*Document, len(files))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(l.concurrency)

	for i, f := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			doc, err := l.ParseFile(f)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Records flattens the records of docs in document order.
func Records(docs []*Document) []lint.ServiceRecord {
	var n int
	for _, d := range docs {
		n += len(d.Records)
	}
	out := make([]lint.ServiceRecord, 0, n)
	for _, d := range docs {
		out = append(out, d.Records...)
	}
	return out
}
