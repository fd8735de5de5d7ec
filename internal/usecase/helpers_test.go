package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapterrepo "agrolink/internal/adapter/repository"
	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/internal/infrastructure/password"
	"agrolink/internal/infrastructure/token"
)

// Demo data ids as assigned by SeedDemoData on an empty store.
const (
	carlosUserID   int64 = 1
	anaUserID      int64 = 2
	joaoUserID     int64 = 3
	carlosProvider int64 = 1
	anaProvider    int64 = 2
	joaoProducer   int64 = 1
)

var (
	saoPaulo = [2]float64{-23.5505, -46.6333}
	campinas = [2]float64{-22.9056, -47.0608}
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []*entity.Notification
}

func (p *recordingPublisher) PublishNotification(ctx context.Context, notification *entity.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, notification)
}

func (p *recordingPublisher) forUser(userID int64) []*entity.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []*entity.Notification
	for _, n := range p.published {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type testEnv struct {
	store     *repository.Store
	hasher    *password.BcryptHasher
	tokens    *token.Manager
	publisher *recordingPublisher

	auth          *AuthUseCase
	users         *UserUseCase
	providers     *ProviderUseCase
	producers     *ProducerUseCase
	bookings      *BookingUseCase
	reviews       *ReviewUseCase
	notifications *NotificationUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, adapterrepo.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, store *repository.Store) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     store,
		hasher:    password.NewBcryptHasher(bcrypt.MinCost),
		tokens:    token.NewManager("test-secret", time.Hour, token.NewMemoryRevocationStore()),
		publisher: &recordingPublisher{},
	}

	env.notifications = NewNotificationUseCase(store.Notifications, env.publisher)
	env.auth = NewAuthUseCase(store.Users, store.Providers, store.Producers, env.hasher, env.tokens)
	env.users = NewUserUseCase(store.Users, store.Providers, store.Producers, env.hasher)
	env.providers = NewProviderUseCase(store.Providers, store.Users, store.Reviews)
	env.producers = NewProducerUseCase(store.Producers, store.Users)
	env.bookings = NewBookingUseCase(store.Bookings, store.Producers, store.Providers, store.Users, env.notifications)
	env.reviews = NewReviewUseCase(store.Reviews, store.Bookings, store.Providers, env.notifications)

	return env
}

func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, adapterrepo.SeedDemoData(context.Background(), env.store, env.hasher.Hash))
}

func providerIDs(results []*entity.ProviderWithUser) []int64 {
	ids := make([]int64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids
}
