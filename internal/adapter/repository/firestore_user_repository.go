package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return createDoc(ctx, r.client, usersCollection,
		func(tx *firestore.Transaction) error {
			return r.checkUnique(tx, user, 0)
		},
		func(id int64) interface{} {
			user.ID = id
			return user
		},
	)
}

// checkUnique runs inside a transaction so concurrent sign-ups cannot both pass.
func (r *firestoreUserRepository) checkUnique(tx *firestore.Transaction, user *entity.User, selfID int64) error {
	users := r.client.Collection(usersCollection)

	taken, err := existsWhere(tx, users.Where("email", "==", user.Email), selfID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("User with this email already exists", nil)
	}

	taken, err = existsWhere(tx, users.Where("username", "==", user.Username), selfID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("User with this username already exists", nil)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	if err := getDoc(ctx, r.client, usersCollection, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *firestoreUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *firestoreUserRepository) findOne(ctx context.Context, field, value string) (*entity.User, error) {
	query := r.client.Collection(usersCollection).Where(field, "==", value).Limit(1)
	users, err := queryAll[entity.User](ctx, query, "user")
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.NotFound("User", nil)
	}
	return users[0], nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	ref := r.client.Collection(usersCollection).Doc(docID(user.ID))
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		if err := r.checkUnique(tx, user, user.ID); err != nil {
			return err
		}
		return tx.Set(ref, user)
	})
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return mapFirestoreError(err, usersCollection, "update")
}
