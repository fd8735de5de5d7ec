package usecase

import (
	"context"
	"sort"
	"strings"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/geo"
)

// ProviderFilter selects providers. Every field is optional and set fields
// are ANDed. A geo constraint applies only when Latitude, Longitude and
// MaxDistance are all set.
type ProviderFilter struct {
	ServiceType string
	Location    string
	MaxDistance *float64 // km
	Latitude    *float64
	Longitude   *float64
	IsAvailable *bool
}

func (f ProviderFilter) hasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.MaxDistance != nil
}

// Matches reports whether p satisfies every set field of f.
func (f ProviderFilter) Matches(p *entity.Provider) bool {
	if f.ServiceType != "" && string(p.ServiceType) != f.ServiceType {
		return false
	}

	if f.IsAvailable != nil && p.IsAvailable != *f.IsAvailable {
		return false
	}

	// Lower-casing only; accents are compared as written.
	if f.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
		return false
	}

	if f.hasGeo() {
		if !p.HasCoordinates() {
			return false
		}
		query := geo.Point{Lat: *f.Latitude, Lon: *f.Longitude}
		if !query.Within(geo.Point{Lat: *p.Latitude, Lon: *p.Longitude}, *f.MaxDistance) {
			return false
		}
	}

	return true
}

// SearchProviders returns the providers matching filter joined with their
// owning users, ordered by provider id. A provider whose user is missing
// fails the whole search with NotFound.
func (uc *ProviderUseCase) SearchProviders(ctx context.Context, filter ProviderFilter) ([]*entity.ProviderWithUser, error) {
	candidates, err := uc.providerRepo.List(ctx, repository.ProviderQuery{
		ServiceType: entity.ServiceType(filter.ServiceType),
		IsAvailable: filter.IsAvailable,
	})
	if err != nil {
		return nil, err
	}

	results := make([]*entity.ProviderWithUser, 0, len(candidates))
	for _, provider := range candidates {
		if !filter.Matches(provider) {
			continue
		}

		user, err := uc.userRepo.GetByID(ctx, provider.UserID)
		if err != nil {
			return nil, err
		}
		results = append(results, &entity.ProviderWithUser{Provider: provider, User: user})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return results, nil
}

// GetProvidersNearby is SearchProviders restricted to available providers
// within radiusKm of the point.
func (uc *ProviderUseCase) GetProvidersNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]*entity.ProviderWithUser, error) {
	available := true
	return uc.SearchProviders(ctx, ProviderFilter{
		Latitude:    &latitude,
		Longitude:   &longitude,
		MaxDistance: &radiusKm,
		IsAvailable: &available,
	})
}
