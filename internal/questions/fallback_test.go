package questions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type stubProvider struct {
	name  string
	qs    []models.Question
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Questions(context.Context, Query) ([]models.Question, error) {
	s.calls++
	return s.qs, s.err
}

func TestFallbackUsesPrimaryWhenAvailable(t *testing.T) {
	primary := &stubProvider{name: "primary", qs: []models.Question{{ID: "p1"}}}
	secondary := &stubProvider{name: "secondary", qs: []models.Question{{ID: "s1"}}}

	qs, err := NewFallbackProvider(primary, secondary, nil).Questions(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "p1", qs[0].ID)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackOnErrorOrEmpty(t *testing.T) {
	secondary := &stubProvider{name: "secondary", qs: []models.Question{{ID: "s1"}}}

	failing := &stubProvider{name: "primary", err: &ProviderError{Provider: "primary", Message: "down", Err: errors.New("timeout")}}
	qs, err := NewFallbackProvider(failing, secondary, nil).Questions(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "s1", qs[0].ID)

	empty := &stubProvider{name: "primary"}
	qs, err = NewFallbackProvider(empty, secondary, nil).Questions(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "s1", qs[0].ID)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallbackName(t *testing.T) {
	fp := NewFallbackProvider(&stubProvider{name: "mongo"}, &stubProvider{name: "bank"}, nil)
	assert.Equal(t, "mongo+bank", fp.Name())
}

func TestProviderErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &ProviderError{Provider: "mongo", Message: "find failed", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "mongo error: find failed (boom)", err.Error())
}
