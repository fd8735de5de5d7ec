package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type firestoreProducerRepository struct {
	client *firestore.Client
}

func NewFirestoreProducerRepository(client *firestore.Client) repository.ProducerRepository {
	return &firestoreProducerRepository{
		client: client,
	}
}

func (r *firestoreProducerRepository) Create(ctx context.Context, producer *entity.Producer) error {
	return createDoc(ctx, r.client, producersCollection, nil, func(id int64) interface{} {
		producer.ID = id
		return producer
	})
}

func (r *firestoreProducerRepository) GetByID(ctx context.Context, id int64) (*entity.Producer, error) {
	var producer entity.Producer
	if err := getDoc(ctx, r.client, producersCollection, id, &producer); err != nil {
		return nil, err
	}
	return &producer, nil
}

func (r *firestoreProducerRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Producer, error) {
	query := r.client.Collection(producersCollection).Where("userId", "==", userID)
	producers, err := queryAll[entity.Producer](ctx, query, "producer")
	if err != nil {
		return nil, err
	}
	if len(producers) == 0 {
		return nil, errors.NotFound("Producer", nil)
	}

	sortByID(producers, func(p *entity.Producer) int64 { return p.ID })
	return producers[0], nil
}

func (r *firestoreProducerRepository) Update(ctx context.Context, producer *entity.Producer) error {
	return replaceDoc(ctx, r.client, producersCollection, producer.ID, producer)
}
