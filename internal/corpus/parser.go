package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/tokenize"
)

// DefaultProgressEvery is the token interval between progress reports.
const DefaultProgressEvery = 5000

// Progress describes how far a parse has come.
type Progress struct {
	Tokens     int
	BytesRead  int64
	TotalBytes int64
}

// Fraction returns the completed share in [0, 1]; 0 when the size is unknown.
func (p Progress) Fraction() float64 {
	if p.TotalBytes <= 0 {
		return 0
	}
	f := float64(p.BytesRead) / float64(p.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}

// Options configures a Parser.
type Options struct {
	// Store receives every aggregation event inside one transaction per
	// input. Nil disables persistence.
	Store Store

	// OnProgress is called every ProgressEvery tokens and once at the end.
	OnProgress    func(Progress)
	ProgressEvery int

	// Logger for parse events. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Now stamps ImportedAt. Defaults to time.Now.
	Now func() time.Time
}

// Parser reads text inputs and produces Statistics.
type Parser struct {
	opts Options
}

// NewParser returns a Parser with defaults filled in.
func NewParser(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Parser{opts: opts}
}

// ParseFile validates path, then streams and aggregates it. No partial
// Statistics are returned on error.
func (p *Parser) ParseFile(ctx context.Context, path string) (model.Statistics, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Statistics{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return model.Statistics{}, fmt.Errorf("%w: stat %s: %w", ErrRead, path, err)
	}
	if !info.Mode().IsRegular() {
		return model.Statistics{}, fmt.Errorf("%w: %s", ErrNotARegularFile, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("%w: open %s: %w", ErrRead, path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	return p.parse(ctx, file, info.Size(), filepath.Base(path))
}

// ParseReader aggregates text from r under the given source name.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, sourceName string) (model.Statistics, error) {
	return p.parse(ctx, r, 0, sourceName)
}

func (p *Parser) parse(ctx context.Context, r io.Reader, size int64, sourceName string) (model.Statistics, error) {
	importedAt := p.opts.Now().UTC()
	if p.opts.Store == nil {
		return p.run(ctx, r, size, sourceName, importedAt, nil)
	}

	var stats model.Statistics
	err := p.opts.Store.RunInTx(ctx, func(ctx context.Context, rec Recorder) error {
		s, err := p.run(ctx, r, size, sourceName, importedAt, rec)
		if err != nil {
			return err
		}
		if ir, ok := rec.(ImportRecorder); ok {
			if err := ir.RecordImport(ctx, s); err != nil {
				return persistErr("record import", err)
			}
		}
		stats = s
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRead) || errors.Is(err, ErrPersistence) || ctx.Err() != nil {
			return model.Statistics{}, err
		}
		return model.Statistics{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return stats, nil
}

func (p *Parser) run(ctx context.Context, r io.Reader, size int64, sourceName string, importedAt time.Time, rec Recorder) (model.Statistics, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := tokenize.NewScanner(decoded)
	agg := NewAggregator(rec)

	report := func() {
		if p.opts.OnProgress == nil {
			return
		}
		p.opts.OnProgress(Progress{
			Tokens:     scanner.Tokens(),
			BytesRead:  scanner.BytesRead(),
			TotalBytes: size,
		})
	}

	for scanner.Scan() {
		if err := agg.Add(ctx, scanner.Token()); err != nil {
			return model.Statistics{}, err
		}
		if scanner.Tokens()%p.opts.ProgressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return model.Statistics{}, err
			}
			report()
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Statistics{}, fmt.Errorf("%w: %s: %w", ErrRead, sourceName, err)
	}
	if err := agg.Finish(ctx); err != nil {
		return model.Statistics{}, err
	}
	report()

	stats := agg.Statistics(sourceName, importedAt, scanner.Paragraphs())
	p.opts.Logger.Debug("parsed input",
		slog.String("source", sourceName),
		slog.Int("tokens", scanner.Tokens()),
		slog.Int("words", stats.TotalWords()),
		slog.Int("sentences", stats.TotalSentences()),
		slog.Int("paragraphs", stats.TotalParagraphs()),
		slog.Bool("persisted", rec != nil),
	)
	return stats, nil
}
