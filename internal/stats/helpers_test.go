package stats

import (
	"time"

	"github.com/verte-zerg/corpstat/internal/model"
)

var sampleTime = time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)

// sample builds the statistics of "Hello world. Hello there world".
func sample() model.Statistics {
	b := model.NewBuilder()
	b.AddWord("hello")
	b.AddSentenceStart("hello")
	b.AddWord("world")
	b.AddTransition("hello", "world")
	b.AddSentenceEnd("world")
	b.AddWord("hello")
	b.AddSentenceStart("hello")
	b.AddWord("there")
	b.AddTransition("hello", "there")
	b.AddWord("world")
	b.AddTransition("there", "world")
	b.AddSentenceEnd("world")
	b.SetParagraphs(1)
	return b.Build("sample.txt", sampleTime)
}
