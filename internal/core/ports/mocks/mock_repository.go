package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
)

// MockPhotoRepository is an in-memory implementation of ports.PhotoRepository
type MockPhotoRepository struct {
	mu      sync.RWMutex
	photos  map[string]domain.PhotoRecord
	sources []string
	next    int64

	PersistErr error
	ListErr    error
	RemoveErr  error
}

// NewMockPhotoRepository creates a mock whose generated timestamps start at start
func NewMockPhotoRepository(start time.Time) *MockPhotoRepository {
	return &MockPhotoRepository{
		photos: make(map[string]domain.PhotoRecord),
		next:   start.UnixMilli(),
	}
}

// Add seeds a record directly
func (m *MockPhotoRepository) Add(records ...domain.PhotoRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.photos[r.ID] = r
	}
}

// Sources returns the temp locations passed to Persist, in call order
func (m *MockPhotoRepository) Sources() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.sources...)
}

func (m *MockPhotoRepository) EnsureContainer(ctx context.Context) (string, error) {
	return "/mock/security_cam_photos", nil
}

func (m *MockPhotoRepository) Persist(ctx context.Context, tempLocation string) (domain.PhotoRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PersistErr != nil {
		return domain.PhotoRecord{}, m.PersistErr
	}

	ts := m.next
	m.next++
	id := domain.GenerateFilename(ts)
	record := domain.PhotoRecord{
		ID:        id,
		Path:      domain.ReferenceFor(domain.PlatformDefault, "/mock/security_cam_photos/"+id),
		CreatedAt: ts,
	}
	m.photos[id] = record
	m.sources = append(m.sources, tempLocation)
	return record, nil
}

func (m *MockPhotoRepository) List(ctx context.Context) ([]domain.PhotoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	records := make([]domain.PhotoRecord, 0, len(m.photos))
	for _, r := range m.photos {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (m *MockPhotoRepository) Remove(ctx context.Context, record domain.PhotoRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.photos, record.ID)
	return nil
}

func (m *MockPhotoRepository) Get(ctx context.Context, id string) (domain.PhotoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.photos[id]
	if !ok {
		return domain.PhotoRecord{}, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, id)
	}
	return r, nil
}

// --- MockRelay ---

type MockRelay struct {
	mu       sync.Mutex
	payloads []domain.CapturePayload
	SendErr  error
}

func NewMockRelay() *MockRelay {
	return &MockRelay{}
}

func (m *MockRelay) Send(ctx context.Context, payload domain.CapturePayload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return "", m.SendErr
	}
	m.payloads = append(m.payloads, payload)
	return fmt.Sprintf("msg-%d", len(m.payloads)), nil
}

// Payloads returns everything sent so far
func (m *MockRelay) Payloads() []domain.CapturePayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CapturePayload(nil), m.payloads...)
}

// --- MockMailer ---

type MockMailer struct {
	mu      sync.Mutex
	emails  []domain.Email
	SendErr error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return "", m.SendErr
	}
	m.emails = append(m.emails, email)
	return fmt.Sprintf("email-%d", len(m.emails)), nil
}

// Emails returns every email handed to the mailer
func (m *MockMailer) Emails() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Email(nil), m.emails...)
}

// --- MockDeliveryLog ---

type MockDeliveryLog struct {
	mu         sync.Mutex
	deliveries []domain.Delivery
	RecordErr  error
}

func NewMockDeliveryLog() *MockDeliveryLog {
	return &MockDeliveryLog{}
}

func (m *MockDeliveryLog) Record(ctx context.Context, d domain.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.deliveries = append(m.deliveries, d)
	return nil
}

func (m *MockDeliveryLog) Recent(ctx context.Context, limit int) ([]domain.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Delivery, 0, len(m.deliveries))
	for i := len(m.deliveries) - 1; i >= 0; i-- {
		out = append(out, m.deliveries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// --- MockMetadataReader ---

type MockMetadataReader struct {
	Metadata map[string]*domain.PhotoMetadata
}

func NewMockMetadataReader() *MockMetadataReader {
	return &MockMetadataReader{Metadata: make(map[string]*domain.PhotoMetadata)}
}

func (m *MockMetadataReader) Read(ctx context.Context, path string) (*domain.PhotoMetadata, error) {
	meta, ok := m.Metadata[path]
	if !ok {
		return nil, fmt.Errorf("no metadata for %s", path)
	}
	return meta, nil
}
