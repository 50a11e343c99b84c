package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cencenelec"
	"gopkg.in/yaml.v3"
)

// Ensure Exporter implements cencenelec.DocumentStore at compile time.
var _ cencenelec.DocumentStore = (*Exporter)(nil)

// Exporter writes documents as Markdown files with YAML frontmatter.
// Documents are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
// Only baseDir/name and its .tmp and .old siblings are ever touched.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
// baseDir is the parent directory, name is the output directory name.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes the document into the temporary directory.
func (e *Exporter) Save(ctx context.Context, doc *cencenelec.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), DocumentPath(doc))
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the saved documents. The
// previous output is moved aside and only removed once the new one is in
// place. Committing without any saved document yields an empty directory.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	old := filepath.Join(e.baseDir, e.name+".old")
	if err := os.RemoveAll(old); err != nil {
		return err
	}

	hadPrevious := true
	if err := os.Rename(e.finalDir(), old); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		hadPrevious = false
	}

	if err := os.Rename(e.tempDir(), e.finalDir()); err != nil {
		if hadPrevious {
			_ = os.Rename(old, e.finalDir())
		}
		return err
	}

	return os.RemoveAll(old)
}

// Abort discards the saved documents.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// DocumentPath returns the file name a document is exported to.
// Example: "Road traffic signal systems" → Road traffic signal systems.md
func DocumentPath(doc *cencenelec.Document) string {
	name := strings.NewReplacer("/", "-", "\\", "-", "\x00", "").Replace(doc.Title)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "untitled"
	}
	return name + ".md"
}

type frontmatter struct {
	ID        string         `yaml:"id,omitempty"`
	Source    string         `yaml:"source"`
	Title     string         `yaml:"title"`
	WebLink   string         `yaml:"web_link"`
	LocalLink string         `yaml:"local_link,omitempty"`
	PubDate   string         `yaml:"pub_date"`
	OtherDate string         `yaml:"other_date,omitempty"`
	Extra     map[string]any `yaml:"extra,omitempty"`
}

// FormatDocument formats a document as YAML frontmatter followed by its
// abstract and, when present, its full text.
func FormatDocument(doc *cencenelec.Document) (string, error) {
	fm := frontmatter{
		ID:      doc.ID,
		Source:  cencenelec.SourceName,
		Title:   doc.Title,
		WebLink: doc.WebLink,
		PubDate: doc.PubDate.Format("2006-01-02"),
		Extra:   doc.Extra,
	}
	if doc.LocalLink != nil {
		fm.LocalLink = *doc.LocalLink
	}
	if doc.OtherDate != nil {
		fm.OtherDate = doc.OtherDate.Format("2006-01-02")
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Abstract)
	if doc.FullText != nil {
		b.WriteString("\n\n")
		b.WriteString(*doc.FullText)
	}
	return b.String(), nil
}
