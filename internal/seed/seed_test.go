package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdab/fietsen/internal/app/repositories/memory"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))

	campus, err := repos.CampusRepository.FindByName(ctx, DefaultCampusName)
	require.NoError(t, err)
	require.NotNil(t, campus)
	assert.Equal(t, "Brussel", campus.Address.Municipality)

	for _, name := range DefaultResponsibilities {
		r, err := repos.ResponsibilityRepository.FindByName(ctx, name)
		require.NoError(t, err)
		require.NotNil(t, r, name)
	}
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))
	first, err := repos.CampusRepository.FindByName(ctx, DefaultCampusName)
	require.NoError(t, err)

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))
	second, err := repos.CampusRepository.FindByName(ctx, DefaultCampusName)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	r, err := repos.ResponsibilityRepository.FindByName(ctx, "ehbo")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "EHBO", r.Name())
}
