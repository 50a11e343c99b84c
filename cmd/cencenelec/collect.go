package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/cencenelec"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	docs, collectErr := deps.Collector.Content(deps.Ctx)

	for _, doc := range docs {
		fmt.Fprintln(deps.Stdout, cencenelec.FormatDocumentForLog(doc))
	}

	var errs []error
	if collectErr != nil {
		fmt.Fprintf(deps.Stderr, "error: collection stopped after %d documents: %v\n", len(docs), collectErr)
		errs = append(errs, collectErr)
	}

	if c.Save {
		if err := saveDocuments(deps, docs); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Export != "" && collectErr != nil {
		fmt.Fprintf(deps.Stderr, "export skipped: previous export in %s kept\n", c.Export)
	} else if c.Export != "" {
		if err := exportDocuments(deps, c.Export, docs); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func saveDocuments(deps *Dependencies, docs []*cencenelec.Document) error {
	counts := map[cencenelec.SaveResult]int{}
	for _, doc := range docs {
		result, err := deps.Documents.SaveDocument(deps.Ctx, doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: saving %q: %s\n", doc.Title, cencenelec.ErrorMessage(err))
			return err
		}
		counts[result]++
	}

	fmt.Fprintf(deps.Stdout, "Saved: %d created, %d updated, %d unchanged\n",
		counts[cencenelec.SaveCreated], counts[cencenelec.SaveUpdated], counts[cencenelec.SaveUnchanged])
	return nil
}

func exportDocuments(deps *Dependencies, path string, docs []*cencenelec.Document) error {
	store := deps.NewStore(path)
	for _, doc := range docs {
		if err := store.Save(deps.Ctx, doc); err != nil {
			_ = store.Abort()
			return fmt.Errorf("exporting %q: %w", doc.Title, err)
		}
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fmt.Errorf("committing export: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), path)
	return nil
}
