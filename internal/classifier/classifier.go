
package classifier

import (
	"context"
	"errors"
	"net"

	"rae-verb-notes/internal/crawler"
	"rae-verb-notes/internal/models"
	"rae-verb-notes/internal/parser"
)

type Classifier struct{}

func New() *Classifier { return &Classifier{} }

// Classify maps a lookup error onto the failure taxonomy.
func (c *Classifier) Classify(err error) models.FailureKind {
	if err == nil {
		return models.FailureNone
	}
	var netErr net.Error
	switch {
	case errors.Is(err, parser.ErrEntryNotFound):
		return models.FailureEntryNotFound
	case errors.Is(err, crawler.ErrBadResponse):
		return models.FailureBadResponse
	case errors.Is(err, crawler.ErrNetwork),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return models.FailureNetwork
	}
	return models.FailureOther
}

// State returns the terminal state a failed lookup ends in.
func (c *Classifier) State(kind models.FailureKind) models.State {
	switch kind {
	case models.FailureNone:
		return models.StateWritten
	case models.FailureEntryNotFound:
		return models.StateEntryMissing
	}
	return models.StateFailed
}

// Label is the console wording for a failure, matching the progress line format.
func (c *Classifier) Label(kind models.FailureKind) string {
	switch kind {
	case models.FailureNone:
		return "añadido"
	case models.FailureEntryNotFound:
		return "no existe"
	case models.FailureBadResponse:
		return "mala respuesta"
	case models.FailureNetwork:
		return "error de red"
	}
	return "error"
}
