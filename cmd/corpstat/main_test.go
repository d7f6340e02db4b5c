package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = "Hello world. Hello there world!\n\nA new paragraph starts here."

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleText), 0o644))
	return path
}

func TestRootRequiresOneFile(t *testing.T) {
	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")

	_, err = execute(t, "a.txt", "b.txt")
	require.Error(t, err)
}

func TestRootMissingFile(t *testing.T) {
	_, err := execute(t, "--progress", "never", "--no-json", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestRootWritesSummaryAndJSON(t *testing.T) {
	input := writeInput(t)
	jsonPath := filepath.Join(t.TempDir(), "out", "result.json")

	out, err := execute(t, "--progress", "never", "--out", jsonPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, "Total words: 10")
	assert.Contains(t, out, "Total sentences: 3")
	assert.Contains(t, out, "Total paragraphs: 2")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var doc struct {
		FileMeta struct {
			FileName   string `json:"fileName"`
			TotalWords int    `json:"totalWords"`
		} `json:"fileMeta"`
		WordCounts map[string]int `json:"wordCounts"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "input.txt", doc.FileMeta.FileName)
	assert.Equal(t, 10, doc.FileMeta.TotalWords)
	assert.Equal(t, 2, doc.WordCounts["hello"])
}

func TestRootNoJSON(t *testing.T) {
	input := writeInput(t)
	jsonPath := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, "--progress", "never", "--no-json", "--out", jsonPath, input)
	require.NoError(t, err)
	_, statErr := os.Stat(jsonPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootRejectsBadProgress(t *testing.T) {
	input := writeInput(t)
	_, err := execute(t, "--progress", "sometimes", "--no-json", input)
	require.Error(t, err)
}

func TestRootPersistsAndTopReads(t *testing.T) {
	input := writeInput(t)
	dbPath := filepath.Join(t.TempDir(), "corpstat.db")
	t.Setenv("CORPSTAT_DB_DSN", dbPath)

	_, err := execute(t, "--progress", "never", "--no-json", "--db", input)
	require.NoError(t, err)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"top", "--limit", "3"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "input.txt")
}

func TestGenerateFromFile(t *testing.T) {
	input := writeInput(t)
	out, err := execute(t, "generate", "--from", input, "--count", "3", "--seed", "7")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.NotEmpty(t, line)
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	_, err := execute(t, "generate", "--count", "0")
	require.Error(t, err)
}

func TestConfigPrint(t *testing.T) {
	out, err := execute(t, "config", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "[parse]")
	assert.Contains(t, out, "[database]")
}
