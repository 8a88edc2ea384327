package questions

import (
	"context"
	"errors"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
)

// ErrNoQuestions is returned when a provider has nothing for a query.
var ErrNoQuestions = errors.New("no questions available")

// Query describes the round a question set is requested for.
type Query struct {
	CompanyName string
	JobTitle    string
	RoundType   models.RoundType
	Difficulty  string
	Count       int
}

// Provider supplies questions for a round. Implementations must not return
// more than Query.Count questions when Count is positive.
type Provider interface {
	Questions(ctx context.Context, q Query) ([]models.Question, error)
	Name() string
}

// ProviderError wraps a failure from a named provider.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
