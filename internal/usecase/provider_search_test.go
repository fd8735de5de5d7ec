package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "agrolink/internal/adapter/repository"
	"agrolink/internal/domain/entity"
	"agrolink/internal/infrastructure/database"
	"agrolink/pkg/errors"
	"agrolink/pkg/utils"
)

func TestProviderFilter_Matches(t *testing.T) {
	provider := &entity.Provider{
		ServiceType: entity.ServiceTypeDrone,
		Location:    "São Paulo, SP",
		Latitude:    utils.Ptr(saoPaulo[0]),
		Longitude:   utils.Ptr(saoPaulo[1]),
		IsAvailable: true,
	}

	tests := []struct {
		name   string
		filter ProviderFilter
		want   bool
	}{
		{"empty filter", ProviderFilter{}, true},
		{"service type match", ProviderFilter{ServiceType: "drone"}, true},
		{"service type mismatch", ProviderFilter{ServiceType: "tractor"}, false},
		{"available", ProviderFilter{IsAvailable: utils.Ptr(true)}, true},
		{"unavailable", ProviderFilter{IsAvailable: utils.Ptr(false)}, false},
		{"location substring", ProviderFilter{Location: "paulo"}, true},
		{"location upper case", ProviderFilter{Location: "SÃO PAULO"}, true},
		{"location without accent", ProviderFilter{Location: "sao paulo"}, false},
		{"inside radius", ProviderFilter{Latitude: utils.Ptr(campinas[0]), Longitude: utils.Ptr(campinas[1]), MaxDistance: utils.Ptr(100.0)}, true},
		{"outside radius", ProviderFilter{Latitude: utils.Ptr(campinas[0]), Longitude: utils.Ptr(campinas[1]), MaxDistance: utils.Ptr(50.0)}, false},
		{"partial geo is ignored", ProviderFilter{Latitude: utils.Ptr(campinas[0]), Longitude: utils.Ptr(campinas[1])}, true},
		{"zero radius at same point", ProviderFilter{Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(0.0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(provider))
		})
	}
}

func TestProviderFilter_GeoExcludesProvidersWithoutCoordinates(t *testing.T) {
	provider := &entity.Provider{ServiceType: entity.ServiceTypeDrone, Location: "Campinas, SP", Latitude: utils.Ptr(campinas[0])}
	filter := ProviderFilter{Latitude: utils.Ptr(campinas[0]), Longitude: utils.Ptr(campinas[1]), MaxDistance: utils.Ptr(20000.0)}

	assert.False(t, filter.Matches(provider))
	assert.True(t, ProviderFilter{Location: "campinas"}.Matches(provider))
}

func TestSearchProviders_DistanceCutoff(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	within50, err := env.providers.SearchProviders(ctx, ProviderFilter{
		Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{carlosProvider}, providerIDs(within50))

	within100, err := env.providers.SearchProviders(ctx, ProviderFilter{
		Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(100.0),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{carlosProvider, anaProvider}, providerIDs(within100))
}

func TestSearchProviders_JoinsOwningUser(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	results, err := env.providers.SearchProviders(context.Background(), ProviderFilter{Location: "paulo"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, carlosProvider, results[0].ID)
	require.NotNil(t, results[0].User)
	assert.Equal(t, "carlos.santos", results[0].User.Username)
}

func TestSearchProviders_EmptyResultIsNotNil(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	results, err := env.providers.SearchProviders(context.Background(), ProviderFilter{ServiceType: "tractor"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchProviders_MissingOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	orphan := &entity.Provider{UserID: 999, ServiceType: entity.ServiceTypeManual, Specialty: "Colheita", Location: "Lins, SP", IsAvailable: true}
	require.NoError(t, env.store.Providers.Create(context.Background(), orphan))

	_, err := env.providers.SearchProviders(context.Background(), ProviderFilter{})
	assert.True(t, errors.IsNotFound(err))

	// The orphan is filtered out before the join, so this search still works.
	results, err := env.providers.SearchProviders(context.Background(), ProviderFilter{ServiceType: "drone"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchProviders_ZeroCoordinateIsAValidQueryPoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := &entity.User{Username: "gulf", Email: "gulf@example.com", Name: "Gulf", UserType: entity.UserTypeProvider}
	require.NoError(t, env.store.Users.Create(ctx, user))
	provider := &entity.Provider{
		UserID: user.ID, ServiceType: entity.ServiceTypeDrone, Specialty: "Mapeamento",
		Location: "Null Island", Latitude: utils.Ptr(0.0), Longitude: utils.Ptr(0.0), IsAvailable: true,
	}
	require.NoError(t, env.store.Providers.Create(ctx, provider))

	results, err := env.providers.SearchProviders(ctx, ProviderFilter{Latitude: utils.Ptr(0.0), Longitude: utils.Ptr(0.0), MaxDistance: utils.Ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, []int64{provider.ID}, providerIDs(results))

	results, err = env.providers.SearchProviders(ctx, ProviderFilter{Latitude: utils.Ptr(10.0), Longitude: utils.Ptr(10.0), MaxDistance: utils.Ptr(1.0)})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetProvidersNearby_MatchesAvailableSearch(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	_, err := env.providers.UpdateProvider(ctx, anaUserID, anaProvider, UpdateProviderInput{IsAvailable: utils.Ptr(false)})
	require.NoError(t, err)

	for _, radius := range []float64{10, 50, 100, 500} {
		nearby, err := env.providers.GetProvidersNearby(ctx, saoPaulo[0], saoPaulo[1], radius)
		require.NoError(t, err)

		search, err := env.providers.SearchProviders(ctx, ProviderFilter{
			Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(radius), IsAvailable: utils.Ptr(true),
		})
		require.NoError(t, err)

		assert.Equal(t, providerIDs(search), providerIDs(nearby), "radius %v", radius)
	}

	nearby, err := env.providers.GetProvidersNearby(ctx, saoPaulo[0], saoPaulo[1], 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{carlosProvider}, providerIDs(nearby))

	all, err := env.providers.SearchProviders(ctx, ProviderFilter{Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(100.0)})
	require.NoError(t, err)
	assert.Equal(t, []int64{carlosProvider, anaProvider}, providerIDs(all))
}

func TestSearchProviders_ResultsAreSubsetOfUnfiltered(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	all, err := env.providers.SearchProviders(ctx, ProviderFilter{})
	require.NoError(t, err)
	allIDs := providerIDs(all)

	filters := []ProviderFilter{
		{ServiceType: "drone"},
		{Location: "sp"},
		{IsAvailable: utils.Ptr(true)},
		{ServiceType: "drone", Location: "campinas", IsAvailable: utils.Ptr(true)},
		{Latitude: utils.Ptr(-21.1775), Longitude: utils.Ptr(-47.8100), MaxDistance: utils.Ptr(250.0)},
	}
	for _, f := range filters {
		results, err := env.providers.SearchProviders(ctx, f)
		require.NoError(t, err)
		assert.Subset(t, allIDs, providerIDs(results))
	}
}

func TestSearchProviders_SameResultsOnMemoryAndSQLite(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, adapterrepo.AutoMigrate(db))

	memEnv := newTestEnv(t)
	memEnv.seed(t)
	sqlEnv := newTestEnvWithStore(t, adapterrepo.NewGormStore(db))
	sqlEnv.seed(t)

	ctx := context.Background()
	for _, env := range []*testEnv{memEnv, sqlEnv} {
		_, err := env.providers.UpdateProvider(ctx, anaUserID, anaProvider, UpdateProviderInput{IsAvailable: utils.Ptr(false)})
		require.NoError(t, err)
	}

	filters := []ProviderFilter{
		{},
		{ServiceType: "drone"},
		{Location: "campinas"},
		{IsAvailable: utils.Ptr(true)},
		{IsAvailable: utils.Ptr(false)},
		{Latitude: utils.Ptr(saoPaulo[0]), Longitude: utils.Ptr(saoPaulo[1]), MaxDistance: utils.Ptr(100.0)},
		{Latitude: utils.Ptr(campinas[0]), Longitude: utils.Ptr(campinas[1]), MaxDistance: utils.Ptr(10.0), IsAvailable: utils.Ptr(true)},
	}

	for i, filter := range filters {
		fromMemory, err := memEnv.providers.SearchProviders(ctx, filter)
		require.NoError(t, err)
		fromSQLite, err := sqlEnv.providers.SearchProviders(ctx, filter)
		require.NoError(t, err)

		assert.Equal(t, providerIDs(fromMemory), providerIDs(fromSQLite), "filter %d", i)
	}
}
