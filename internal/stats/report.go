package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/store"
)

// Source is the read side of the store used by reports.
type Source interface {
	TopWords(ctx context.Context, rank store.WordRank, limit int) ([]model.WordRow, error)
	TopTransitions(ctx context.Context, limit int) ([]model.TransitionRow, error)
	Imports(ctx context.Context, limit int) ([]model.ImportRow, error)
}

// Report contains precomputed data for rendering persisted statistics.
type Report struct {
	StartWords  []Ranked
	EndWords    []Ranked
	Transitions []RankedPair
	Imports     []model.ImportRow
}

// BuildReport loads the top entries of every ranking from src.
func BuildReport(ctx context.Context, src Source, limit int) (Report, error) {
	starts, err := src.TopWords(ctx, store.RankStart, limit)
	if err != nil {
		return Report{}, err
	}
	ends, err := src.TopWords(ctx, store.RankEnd, limit)
	if err != nil {
		return Report{}, err
	}
	transitions, err := src.TopTransitions(ctx, limit)
	if err != nil {
		return Report{}, err
	}
	imports, err := src.Imports(ctx, limit)
	if err != nil {
		return Report{}, err
	}

	r := Report{Imports: imports}
	for _, w := range starts {
		r.StartWords = append(r.StartWords, Ranked{Word: w.Text, Count: w.StartCount})
	}
	for _, w := range ends {
		r.EndWords = append(r.EndWords, Ranked{Word: w.Text, Count: w.EndCount})
	}
	for _, t := range transitions {
		r.Transitions = append(r.Transitions, RankedPair{From: t.From, To: t.To, Count: t.Count})
	}
	return r, nil
}

// RenderReport prints every section of r.
func RenderReport(w io.Writer, r Report) error {
	if err := renderImports(w, r.Imports); err != nil {
		return err
	}
	if err := RenderTopWords(w, "Sentence starts", r.StartWords); err != nil {
		return err
	}
	if err := RenderTopWords(w, "Sentence ends", r.EndWords); err != nil {
		return err
	}
	return RenderTopTransitions(w, "Transitions", r.Transitions)
}

func renderImports(w io.Writer, imports []model.ImportRow) error {
	if _, err := fmt.Fprintln(w, "Imports"); err != nil {
		return err
	}
	if len(imports) == 0 {
		_, err := fmt.Fprint(w, "No imports found.\n\n")
		return err
	}
	rows := make([][]string, 0, len(imports))
	for _, im := range imports {
		rows = append(rows, []string{
			im.ImportedAt.UTC().Format(time.DateTime),
			im.FileName,
			fmt.Sprintf("%d", im.TotalWords),
			fmt.Sprintf("%d", im.TotalSentences),
			fmt.Sprintf("%d", im.TotalParagraphs),
		})
	}
	return writeTable(w, []string{"Imported", "File", "Words", "Sentences", "Paragraphs"}, rows, map[int]bool{2: true, 3: true, 4: true})
}
