package stats

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/store"
)

type fakeSource struct {
	err error
}

func (f fakeSource) TopWords(_ context.Context, rank store.WordRank, _ int) ([]model.WordRow, error) {
	if rank == store.RankStart {
		return []model.WordRow{{Text: "the", StartCount: 7, EndCount: 1}}, f.err
	}
	return []model.WordRow{{Text: "end", StartCount: 0, EndCount: 4}}, f.err
}

func (f fakeSource) TopTransitions(context.Context, int) ([]model.TransitionRow, error) {
	return []model.TransitionRow{{From: "of", To: "the", Count: 9}}, nil
}

func (f fakeSource) Imports(context.Context, int) ([]model.ImportRow, error) {
	return []model.ImportRow{{FileName: "book.txt", ImportedAt: sampleTime, TotalWords: 120, TotalSentences: 9, TotalParagraphs: 3}}, nil
}

func TestBuildAndRenderReport(t *testing.T) {
	r, err := BuildReport(context.Background(), fakeSource{}, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(r.StartWords) != 1 || r.StartWords[0] != (Ranked{Word: "the", Count: 7}) {
		t.Fatalf("unexpected start words %v", r.StartWords)
	}
	if len(r.EndWords) != 1 || r.EndWords[0] != (Ranked{Word: "end", Count: 4}) {
		t.Fatalf("unexpected end words %v", r.EndWords)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, r); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Imports", "2024-01-02 03:04:05 book.txt", "Sentence starts", "1 the", "Sentence ends", "Transitions", "1 of   the"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBuildReportError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := BuildReport(context.Background(), fakeSource{err: boom}, 5); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
