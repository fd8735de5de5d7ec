package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type firestoreProviderRepository struct {
	client *firestore.Client
}

func NewFirestoreProviderRepository(client *firestore.Client) repository.ProviderRepository {
	return &firestoreProviderRepository{
		client: client,
	}
}

func (r *firestoreProviderRepository) Create(ctx context.Context, provider *entity.Provider) error {
	return createDoc(ctx, r.client, providersCollection, nil, func(id int64) interface{} {
		provider.ID = id
		return provider
	})
}

func (r *firestoreProviderRepository) GetByID(ctx context.Context, id int64) (*entity.Provider, error) {
	var provider entity.Provider
	if err := getDoc(ctx, r.client, providersCollection, id, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *firestoreProviderRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Provider, error) {
	query := r.client.Collection(providersCollection).Where("userId", "==", userID)
	providers, err := queryAll[entity.Provider](ctx, query, "provider")
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, errors.NotFound("Provider", nil)
	}

	sortByID(providers, func(p *entity.Provider) int64 { return p.ID })
	return providers[0], nil
}

// List pushes the exact-match filters into Firestore and orders in memory,
// which keeps the query free of composite indexes.
func (r *firestoreProviderRepository) List(ctx context.Context, q repository.ProviderQuery) ([]*entity.Provider, error) {
	query := r.client.Collection(providersCollection).Query
	if q.ServiceType != "" {
		query = query.Where("serviceType", "==", string(q.ServiceType))
	}
	if q.IsAvailable != nil {
		query = query.Where("isAvailable", "==", *q.IsAvailable)
	}

	providers, err := queryAll[entity.Provider](ctx, query, "provider")
	if err != nil {
		return nil, err
	}

	sortByID(providers, func(p *entity.Provider) int64 { return p.ID })
	return providers, nil
}

func (r *firestoreProviderRepository) Update(ctx context.Context, provider *entity.Provider) error {
	return replaceDoc(ctx, r.client, providersCollection, provider.ID, provider)
}
