package stats

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/corpstat/internal/model"
)

const indent = "  "

// jsonWriter writes an ordered JSON document and keeps the first error.
type jsonWriter struct {
	w   *bufio.Writer
	buf bytes.Buffer
	enc *json.Encoder
	err error
}

func newJSONWriter(w io.Writer) *jsonWriter {
	jw := &jsonWriter{w: bufio.NewWriter(w)}
	jw.enc = json.NewEncoder(&jw.buf)
	jw.enc.SetEscapeHTML(false)
	return jw
}

func (jw *jsonWriter) raw(s string) {
	if jw.err != nil {
		return
	}
	_, jw.err = jw.w.WriteString(s)
}

func (jw *jsonWriter) str(s string) {
	if jw.err != nil {
		return
	}
	jw.buf.Reset()
	if err := jw.enc.Encode(s); err != nil {
		jw.err = err
		return
	}
	// Encode appends a newline.
	jw.raw(string(bytes.TrimSuffix(jw.buf.Bytes(), []byte("\n"))))
}

func (jw *jsonWriter) key(depth int, k string, first bool) {
	if !first {
		jw.raw(",")
	}
	jw.raw("\n")
	for range depth {
		jw.raw(indent)
	}
	jw.str(k)
	jw.raw(": ")
}

func (jw *jsonWriter) close(depth int, empty bool) {
	if !empty {
		jw.raw("\n")
		for range depth {
			jw.raw(indent)
		}
	}
	jw.raw("}")
}

func (jw *jsonWriter) counts(depth int, c model.Counts) {
	jw.raw("{")
	first := true
	for word, n := range c.All() {
		jw.key(depth+1, word, first)
		jw.raw(fmt.Sprintf("%d", n))
		first = false
	}
	jw.close(depth, first)
}

// WriteJSON writes s as the statistics document: fileMeta first, then the
// four count maps in first-seen key order, indented by two spaces.
func WriteJSON(w io.Writer, s model.Statistics) error {
	jw := newJSONWriter(w)
	meta := s.Meta()

	jw.raw("{")
	jw.key(1, "fileMeta", true)
	jw.raw("{")
	jw.key(2, "fileName", true)
	jw.str(meta.FileName)
	jw.key(2, "totalWords", false)
	jw.raw(fmt.Sprintf("%d", meta.TotalWords))
	jw.key(2, "totalSentences", false)
	jw.raw(fmt.Sprintf("%d", meta.TotalSentences))
	jw.key(2, "totalParagraphs", false)
	jw.raw(fmt.Sprintf("%d", meta.TotalParagraphs))
	jw.key(2, "importedAt", false)
	jw.str(meta.ImportedAt.UTC().Format(time.RFC3339Nano))
	jw.close(1, false)

	jw.key(1, "wordCounts", false)
	jw.counts(1, s.WordCounts())
	jw.key(1, "sentenceStartCounts", false)
	jw.counts(1, s.SentenceStartCounts())
	jw.key(1, "sentenceEndCounts", false)
	jw.counts(1, s.SentenceEndCounts())

	jw.key(1, "nextWordCounts", false)
	jw.raw("{")
	first := true
	for from, next := range s.NextWordCounts().All() {
		jw.key(2, from, first)
		jw.counts(2, next)
		first = false
	}
	jw.close(1, first)

	jw.close(0, false)
	jw.raw("\n")

	if jw.err != nil {
		return jw.err
	}
	return jw.w.Flush()
}

// WriteJSONFile writes the statistics document to path, creating parent
// directories as needed.
func WriteJSONFile(path string, s model.Statistics) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	if err := WriteJSON(f, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
