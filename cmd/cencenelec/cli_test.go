package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/cencenelec/cmd/cencenelec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"collect", "download", "docs"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
	assert.Contains(t, helpOutput, "collect")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestMain_Run_CollectSaveAndExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	exportPath := filepath.Join(dir, "export")
	notes := filepath.Join(exportPath, "notes.txt")
	require.NoError(t, os.MkdirAll(exportPath, 0755))
	require.NoError(t, os.WriteFile(notes, []byte("mine"), 0644))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{
		"--db", dbPath,
		"collect", "--delay", "0s", "--save", "--export", exportPath,
	}, stdout, stderr)
	require.NoError(t, err)

	output := stdout.String()
	assert.Equal(t, 3, strings.Count(output, "Find document | name: "))
	assert.Contains(t, output, "link to web: https://standards.cencenelec.eu/ugd/Road traffic signal systems.pdf")
	assert.Contains(t, output, "Saved: 3 created, 0 updated, 0 unchanged")
	assert.Contains(t, output, "Exported 3 documents")

	entries, err := os.ReadDir(filepath.Join(exportPath, "cen&cenelec"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	content, err := os.ReadFile(notes)
	require.NoError(t, err, "files already in the export directory are kept")
	assert.Equal(t, "mine", string(content))

	// A second pass finds the stored documents unchanged
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{
		"--db", dbPath,
		"collect", "--delay", "0s", "--save",
	}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Saved: 0 created, 0 updated, 3 unchanged")

	// And docs lists them by publication date
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{
		"--db", dbPath,
		"docs", "--sort", "pub_date",
	}, stdout, stderr)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "2007-08-03")
	assert.Contains(t, lines[2], "2018-09-28  Road traffic signal systems")
}
