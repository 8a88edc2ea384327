package questions

import (
	"context"
	"errors"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"go.uber.org/zap"
)

// FallbackProvider asks the primary provider first and falls back to the
// secondary one when the primary fails or returns nothing.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
	logger    *zap.Logger
}

func NewFallbackProvider(primary, secondary Provider, logger *zap.Logger) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{primary: primary, secondary: secondary, logger: logger}
}

func (fp *FallbackProvider) Name() string {
	return fp.primary.Name() + "+" + fp.secondary.Name()
}

func (fp *FallbackProvider) Questions(ctx context.Context, q Query) ([]models.Question, error) {
	qs, err := fp.primary.Questions(ctx, q)
	if err == nil && len(qs) > 0 {
		return qs, nil
	}
	if err != nil && !errors.Is(err, ErrNoQuestions) {
		fp.logger.Warn("question provider failed, using fallback",
			zap.String("provider", fp.primary.Name()),
			zap.String("round_type", string(q.RoundType)),
			zap.Error(err))
	}
	return fp.secondary.Questions(ctx, q)
}
