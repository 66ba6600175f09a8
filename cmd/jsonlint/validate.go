package main

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/errors"
)

type result struct {
	document   string
	violations []errors.Validation
	// err is a failure to read or decode the document.
	err error
}

func (r result) valid() bool {
	return r.err == nil && len(r.violations) == 0
}

// validateAll validates documents against schema using up to jobs workers.
// Results keep the order of documents.
func validateAll(schema *jsonschema.Schema, documents []string, jobs int, logger *slog.Logger) []result {
	results := make([]result, len(documents))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, doc := range documents {
		g.Go(func() error {
			start := time.Now()
			results[i] = validateDocument(schema, doc)
			logger.Debug("validated document",
				slog.String("document", doc),
				slog.Bool("valid", results[i].valid()),
				slog.Int("violations", len(results[i].violations)),
				slog.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func validateDocument(schema *jsonschema.Schema, document string) result {
	err := schema.ValidateFile(document)
	if err == nil {
		return result{document: document}
	}
	if violations, ok := errors.AsValidations(err); ok {
		if len(violations) == 1 && violations[0].Code == string(errors.ErrJSONParse) {
			return result{document: document, err: &violations[0]}
		}
		return result{document: document, violations: violations}
	}
	return result{document: document, err: err}
}
