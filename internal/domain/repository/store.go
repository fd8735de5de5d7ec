package repository

// Store groups one backend's repositories. Backends are picked at process start;
// use cases only ever see these interfaces.
type Store struct {
	Users         UserRepository
	Providers     ProviderRepository
	Producers     ProducerRepository
	Bookings      BookingRepository
	Reviews       ReviewRepository
	Notifications NotificationRepository

	// Close releases backend resources. It may be nil.
	Close func() error
}
