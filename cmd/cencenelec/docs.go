package main

import (
	"fmt"

	"github.com/fwojciec/cencenelec"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, cencenelec.DocumentFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
		SortBy: cencenelec.SortOrder(c.Sort),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cencenelec.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'cencenelec collect --save' to store some.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", doc.ID, doc.PubDate.Format("2006-01-02"), doc.Title)
	}

	return nil
}
