package corpus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lexkit/termrel/pkg/termrel/internalerr"
)

// Occurrence is one tokenized word from one document.
// It is the row format consumed by the frequency pipeline.
type Occurrence struct {
	DocID    string
	Category string
	Word     string
}

// Validate checks that the occurrence carries the fields the
// pipeline groups by.
func (o Occurrence) Validate() error {
	if strings.TrimSpace(o.Category) == "" {
		return fmt.Errorf("%w: occurrence missing category", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(o.Word) == "" {
		return fmt.Errorf("%w: occurrence missing word", internalerr.ErrInvalidInput)
	}
	return nil
}

// ValidateAll validates every row and reports each offending row
// by index. Malformed rows are rejected, never silently dropped.
func ValidateAll(occs []Occurrence) error {
	var errs []error
	for i, o := range occs {
		if err := o.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
