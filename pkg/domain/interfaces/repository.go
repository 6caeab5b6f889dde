package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Person() PersonRepository
	Gift() GiftRepository
	Dismissal() DismissalRepository
	Message() MessageRepository

	Close() error
}
