package stats

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/corpstat/internal/model"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{
  "fileMeta": {
    "fileName": "sample.txt",
    "totalWords": 5,
    "totalSentences": 2,
    "totalParagraphs": 1,
    "importedAt": "2024-01-02T03:04:05.000000006Z"
  },
  "wordCounts": {
    "hello": 2,
    "world": 2,
    "there": 1
  },
  "sentenceStartCounts": {
    "hello": 2
  },
  "sentenceEndCounts": {
    "world": 2
  },
  "nextWordCounts": {
    "hello": {
      "world": 1,
      "there": 1
    },
    "there": {
      "world": 1
    }
  }
}
`
	if buf.String() != want {
		t.Fatalf("unexpected document:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, model.NewBuilder().Build("", sampleTime)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"wordCounts": {},`) {
		t.Fatalf("expected empty object, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"nextWordCounts": {}`+"\n}") {
		t.Fatalf("expected empty transitions, got:\n%s", buf.String())
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("invalid json:\n%s", buf.String())
	}
}

func TestWriteJSONEscapes(t *testing.T) {
	b := model.NewBuilder()
	b.AddWord(`it's`)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, b.Build("a \"quoted\"\\path\t<x>.txt", sampleTime)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"fileName": "a \"quoted\"\\path\t<x>.txt"`) {
		t.Fatalf("unexpected escaping:\n%s", buf.String())
	}
	var doc struct {
		FileMeta struct {
			FileName string `json:"fileName"`
		} `json:"fileMeta"`
		WordCounts map[string]int `json:"wordCounts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.FileMeta.FileName != "a \"quoted\"\\path\t<x>.txt" || doc.WordCounts["it's"] != 1 {
		t.Fatalf("unexpected decoded document: %+v", doc)
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "parse_result.json")
	if err := WriteJSONFile(path, sample()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("invalid json:\n%s", data)
	}
}
