package company

import (
	"context"
	"testing"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSourceLookup(t *testing.T) {
	ps, err := NewProfileSource()
	require.NoError(t, err)

	google, err := ps.Lookup(context.Background(), "  GOOGLE ")
	require.NoError(t, err)
	require.NotNil(t, google)
	assert.Equal(t, "Google", google.Name)
	assert.Equal(t, models.TierTopTech, google.Tier)
	assert.NotEmpty(t, google.TechStack)
	assert.NotEmpty(t, google.PreparationTips)

	viaAlias, err := ps.Lookup(context.Background(), "Amazon   Web Services")
	require.NoError(t, err)
	require.NotNil(t, viaAlias)
	assert.Equal(t, "Amazon", viaAlias.Name)
	assert.Equal(t, models.IndustryECommerce, viaAlias.Industry)
}

func TestProfileSourceUnknownCompany(t *testing.T) {
	ps, err := NewProfileSource()
	require.NoError(t, err)

	intel, err := ps.Lookup(context.Background(), "Initech")
	assert.NoError(t, err)
	assert.Nil(t, intel)
}

func TestProfileSourceReturnsCopies(t *testing.T) {
	ps, err := NewProfileSource()
	require.NoError(t, err)

	first, _ := ps.Lookup(context.Background(), "uber")
	first.TechStack[0] = "COBOL"

	second, _ := ps.Lookup(context.Background(), "uber")
	assert.NotEqual(t, "COBOL", second.TechStack[0])
}

func TestProfileSourceNamesSorted(t *testing.T) {
	ps, err := NewProfileSource()
	require.NoError(t, err)

	names := ps.Names()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "Flipkart")
}

func TestProfileSourceCancelledContext(t *testing.T) {
	ps, err := NewProfileSource()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ps.Lookup(ctx, "google")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "amazon web services", NormalizeName("  Amazon\tWeb   SERVICES "))
}
