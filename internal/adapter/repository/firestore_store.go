package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
)

const (
	usersCollection         = "users"
	providersCollection     = "providers"
	producersCollection     = "producers"
	bookingsCollection      = "bookings"
	reviewsCollection       = "reviews"
	notificationsCollection = "notifications"

	// countersCollection holds one document per collection with the last issued id.
	countersCollection = "counters"
)

// NewFirestoreStore builds the Firestore backend. Documents are keyed by their
// decimal id so ids stay numeric across every backend.
func NewFirestoreStore(client *firestore.Client) *repository.Store {
	return &repository.Store{
		Users:         NewFirestoreUserRepository(client),
		Providers:     NewFirestoreProviderRepository(client),
		Producers:     NewFirestoreProducerRepository(client),
		Bookings:      NewFirestoreBookingRepository(client),
		Reviews:       NewFirestoreReviewRepository(client),
		Notifications: NewFirestoreNotificationRepository(client),
		Close:         client.Close,
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// createDoc allocates the next id of collection and writes build(id) under it
// in one transaction. check runs first and may read inside the same transaction.
func createDoc(
	ctx context.Context,
	client *firestore.Client,
	collection string,
	check func(tx *firestore.Transaction) error,
	build func(id int64) interface{},
) error {
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if check != nil {
			if err := check(tx); err != nil {
				return err
			}
		}

		counterRef := client.Collection(countersCollection).Doc(collection)
		next := int64(1)
		doc, err := tx.Get(counterRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if last, err := doc.DataAt("last"); err == nil {
				if n, ok := last.(int64); ok {
					next = n + 1
				}
			}
		}

		if err := tx.Set(counterRef, map[string]interface{}{"last": next}); err != nil {
			return err
		}
		return tx.Create(client.Collection(collection).Doc(docID(next)), build(next))
	})
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr
		}
		return errors.Internal("Failed to create "+resourceLabel(collection), err)
	}
	return nil
}

// getDoc loads the document with id into dst.
func getDoc(ctx context.Context, client *firestore.Client, collection string, id int64, dst interface{}) error {
	doc, err := client.Collection(collection).Doc(docID(id)).Get(ctx)
	if err != nil {
		return mapFirestoreError(err, collection, "get")
	}

	if err := doc.DataTo(dst); err != nil {
		return errors.Internal("Failed to parse "+resourceLabel(collection)+" data", err)
	}
	return nil
}

// replaceDoc overwrites an existing document. A missing document is NotFound.
func replaceDoc(ctx context.Context, client *firestore.Client, collection string, id int64, data interface{}) error {
	ref := client.Collection(collection).Doc(docID(id))
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, data)
	})
	if err != nil {
		return mapFirestoreError(err, collection, "update")
	}
	return nil
}

// mapFirestoreError turns a gRPC NotFound into the resource's NotFound and
// anything else into an internal error naming the failed action.
func mapFirestoreError(err error, collection, action string) error {
	if status.Code(err) == codes.NotFound {
		return errors.NotFound(resourceNames[collection], err)
	}
	return errors.Internal("Failed to "+action+" "+resourceLabel(collection), err)
}

// queryAll decodes every document a query yields.
func queryAll[T any](ctx context.Context, query firestore.Query, resource string) ([]*T, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	items := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query "+resource, err)
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse "+resource+" data", err)
		}
		items = append(items, &item)
	}
	return items, nil
}

// existsWhere reports whether query matches a document other than selfID.
func existsWhere(tx *firestore.Transaction, query firestore.Query, selfID int64) (bool, error) {
	docs, err := tx.Documents(query.Limit(2)).GetAll()
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		if doc.Ref.ID != docID(selfID) {
			return true, nil
		}
	}
	return false, nil
}

var resourceNames = map[string]string{
	usersCollection:         "User",
	providersCollection:     "Provider",
	producersCollection:     "Producer",
	bookingsCollection:      "Booking",
	reviewsCollection:       "Review",
	notificationsCollection: "Notification",
}

func resourceLabel(collection string) string {
	return strings.ToLower(resourceNames[collection])
}

func sortByID[T any](items []*T, id func(*T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
