package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/cencenelec"
	"github.com/fwojciec/cencenelec/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Story: Atomic Export
// The exporter uses a temp directory for atomic updates

func testDocument() *cencenelec.Document {
	return &cencenelec.Document{
		Title:    "Road traffic signal systems",
		Abstract: "This document specifies requirements for Road Traffic Signal Systems.",
		WebLink:  "https://standards.cencenelec.eu/ugd/Road traffic signal systems.pdf",
		Extra:    map[string]any{},
		PubDate:  time.Date(2018, 9, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestExporter_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given an exporter targeting a directory
	base := t.TempDir()
	exp := fs.NewExporter(base, "output")

	// When I save a document
	err := exp.Save(context.Background(), testDocument())

	// Then the file exists in the temp directory only
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp", "Road traffic signal systems.md"))
	require.NoError(t, err, "file should exist in temp directory")
	_, err = os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestExporter_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given an exporter with a saved document
	base := t.TempDir()
	exp := fs.NewExporter(base, "output")
	require.NoError(t, exp.Save(context.Background(), testDocument()))

	// When I commit
	err := exp.Commit()

	// Then the final directory holds the document and the temp one is gone
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "Road traffic signal systems.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_CommitReplacesPreviousExport(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	stale := filepath.Join(base, "output", "stale.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	exp := fs.NewExporter(base, "output")
	require.NoError(t, exp.Save(context.Background(), testDocument()))
	require.NoError(t, exp.Commit())

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale files should be removed")
}

func TestExporter_CommitLeavesSiblingFilesAlone(t *testing.T) {
	t.Parallel()

	// Given a base directory holding unrelated user files
	base := t.TempDir()
	thesis := filepath.Join(base, "thesis.docx")
	require.NoError(t, os.WriteFile(thesis, []byte("keep me"), 0644))

	// When I export and commit
	exp := fs.NewExporter(base, "output")
	require.NoError(t, exp.Save(context.Background(), testDocument()))
	require.NoError(t, exp.Commit())

	// Then the unrelated file is untouched
	content, err := os.ReadFile(thesis)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestExporter_CommitWithoutSavesCreatesEmptyOutput(t *testing.T) {
	t.Parallel()

	// Given an exporter that saved nothing
	base := t.TempDir()
	exp := fs.NewExporter(base, "output")

	// When I commit
	err := exp.Commit()

	// Then an empty output directory exists
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(base, "output"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporter_CommitRemovesPreviousCopy(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "output"), 0755))

	exp := fs.NewExporter(base, "output")
	require.NoError(t, exp.Save(context.Background(), testDocument()))
	require.NoError(t, exp.Commit())

	_, err := os.Stat(filepath.Join(base, "output.old"))
	assert.True(t, os.IsNotExist(err), "previous copy should be removed after commit")
	_, err = os.Stat(filepath.Join(base, "output", "Road traffic signal systems.md"))
	assert.NoError(t, err)
}

func TestExporter_FailedCommitRestoresPreviousOutput(t *testing.T) {
	t.Parallel()

	// Given a previous export and a temp path that cannot become a directory
	base := t.TempDir()
	previous := filepath.Join(base, "output", "previous.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0755))
	require.NoError(t, os.WriteFile(previous, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "output.tmp"), []byte("not a dir"), 0644))

	// When I commit
	err := fs.NewExporter(base, "output").Commit()

	// Then the commit fails and the previous export is intact
	require.Error(t, err)
	content, err := os.ReadFile(previous)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
}

func TestExporter_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	exp := fs.NewExporter(base, "output")
	require.NoError(t, exp.Save(context.Background(), testDocument()))

	err := exp.Abort()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_SaveRejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	exp := fs.NewExporter(t.TempDir(), "output")

	err := exp.Save(context.Background(), &cencenelec.Document{})

	assert.Equal(t, cencenelec.EINVALID, cencenelec.ErrorCode(err))
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes frontmatter and abstract", func(t *testing.T) {
		t.Parallel()

		content, err := fs.FormatDocument(testDocument())
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(content, "---\n"))
		parts := strings.SplitN(strings.TrimPrefix(content, "---\n"), "---\n\n", 2)
		require.Len(t, parts, 2)

		var fm map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(parts[0]), &fm))
		assert.Equal(t, "cen&cenelec", fm["source"])
		assert.Equal(t, "Road traffic signal systems", fm["title"])
		assert.Equal(t, "https://standards.cencenelec.eu/ugd/Road traffic signal systems.pdf", fm["web_link"])
		assert.Equal(t, "2018-09-28", fm["pub_date"])
		assert.NotContains(t, fm, "id")
		assert.Equal(t, "This document specifies requirements for Road Traffic Signal Systems.", parts[1])
	})

	t.Run("appends full text when present", func(t *testing.T) {
		t.Parallel()

		doc := testDocument()
		text := "Full body."
		doc.FullText = &text

		content, err := fs.FormatDocument(doc)

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(content, "Systems.\n\nFull body."))
	})
}

func TestDocumentPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Road traffic signal systems.md", fs.DocumentPath(testDocument()))
	assert.Equal(t, "a-b.md", fs.DocumentPath(&cencenelec.Document{Title: "a/b"}))
	assert.Equal(t, "untitled.md", fs.DocumentPath(&cencenelec.Document{Title: ".."}))
}
