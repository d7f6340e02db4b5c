package stats

import (
	"testing"

	"github.com/verte-zerg/corpstat/internal/model"
)

func TestTopWords(t *testing.T) {
	b := model.NewBuilder()
	for _, w := range []string{"b", "a", "c", "a", "b", "a"} {
		b.AddWord(w)
	}
	top := TopWords(b.Build("x", sampleTime).WordCounts(), 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0] != (Ranked{Word: "a", Count: 3}) || top[1] != (Ranked{Word: "b", Count: 2}) {
		t.Fatalf("unexpected order: %v", top)
	}
}

func TestTopWordsTiesKeepFirstSeenOrder(t *testing.T) {
	top := TopWords(sample().WordCounts(), 10)
	want := []Ranked{{"hello", 2}, {"world", 2}, {"there", 1}}
	if len(top) != len(want) {
		t.Fatalf("expected %v, got %v", want, top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, top)
		}
	}
	if TopWords(sample().WordCounts(), 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestTopTransitions(t *testing.T) {
	b := model.NewBuilder()
	b.AddTransition("a", "b")
	b.AddTransition("c", "d")
	b.AddTransition("c", "d")
	b.AddTransition("a", "e")
	top := TopTransitions(b.Build("x", sampleTime).NextWordCounts(), 2)
	want := []RankedPair{{"c", "d", 2}, {"a", "b", 1}}
	if len(top) != 2 || top[0] != want[0] || top[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, top)
	}
}
