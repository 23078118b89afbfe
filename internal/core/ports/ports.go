package ports

import (
	"context"

	"github.com/kamal-hamza/secam/internal/core/domain"
)

// PhotoRepository defines the port for photo persistence operations
type PhotoRepository interface {
	// EnsureContainer creates the managed directory if missing and returns its path
	EnsureContainer(ctx context.Context) (string, error)

	// Persist moves a temporary capture into storage under a generated name
	Persist(ctx context.Context, tempLocation string) (domain.PhotoRecord, error)

	// List returns every stored photo, most recent first
	List(ctx context.Context) ([]domain.PhotoRecord, error)

	// Remove deletes the photo's file; removing an absent file is not an error
	Remove(ctx context.Context, record domain.PhotoRecord) error

	// Get retrieves a photo by identity
	Get(ctx context.Context, id string) (domain.PhotoRecord, error)
}

// MetadataReader defines the port for reading photo metadata (EXIF)
type MetadataReader interface {
	Read(ctx context.Context, path string) (*domain.PhotoMetadata, error)
}

// Relay defines the port for forwarding a capture to the email relay
type Relay interface {
	// Send posts the payload and returns the provider message id
	Send(ctx context.Context, payload domain.CapturePayload) (string, error)
}

// Mailer defines the port for the third-party email provider
type Mailer interface {
	Send(ctx context.Context, email domain.Email) (string, error)
}

// DeliveryLog defines the port for recording relay outcomes
type DeliveryLog interface {
	Record(ctx context.Context, delivery domain.Delivery) error
	Recent(ctx context.Context, limit int) ([]domain.Delivery, error)
}

// FileOpener defines the port for opening files with default applications
type FileOpener interface {
	Open(ctx context.Context, filepath string) error
}
