// Package storage persists computed quotations.
// Supports file and in-memory backends.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Store is the quotation storage interface
type Store interface {
	// Save stores a quotation
	Save(ctx context.Context, record *Record) error

	// Get retrieves a quotation by ID
	Get(ctx context.Context, id string) (*Record, error)

	// List lists stored quotations with filters
	List(ctx context.Context, filter *ListFilter) ([]*Record, error)

	// Delete removes a quotation
	Delete(ctx context.Context, id string) error

	// GetLatest gets the most recent quotation for a tenant
	GetLatest(ctx context.Context, tenantID string) (*Record, error)

	// Close closes the store
	Close() error
}

// Record is a stored quotation with indexing metadata
type Record struct {
	// ID is the record identifier (same as the quotation ID)
	ID string `json:"id"`

	// TenantID groups quotations
	TenantID string `json:"tenant_id"`

	// Label is an optional human-readable name for the quotation
	Label string `json:"label,omitempty"`

	// Currency of the quotation
	Currency types.Currency `json:"currency"`

	// GrandTotal is denormalized for cheap filtering and listing
	GrandTotal decimal.Decimal `json:"grand_total"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`

	// Metadata
	Metadata map[string]string `json:"metadata,omitempty"`

	// Quotation is the full computed quotation
	Quotation *types.Quotation `json:"quotation"`
}

// ListFilter filters quotation listing
type ListFilter struct {
	TenantID string
	Currency types.Currency
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}

// NewRecord wraps a quotation for storage
func NewRecord(q *types.Quotation, label string) *Record {
	return &Record{
		ID:         q.ID,
		TenantID:   q.TenantID,
		Label:      label,
		Currency:   q.Currency,
		GrandTotal: q.GrandTotal,
		Quotation:  q,
	}
}

// New creates a store for the given backend
func New(backend Backend, directory string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(directory)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown storage backend %q", backend)
	}
}

// FileStore is a file-based storage backend.
// Records are laid out as <base>/<tenant>/<id>.json.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStore creates a file store
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "failed to create storage directory", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	tenantDir := filepath.Join(s.basePath, record.TenantID)
	if err := os.MkdirAll(tenantDir, 0755); err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to create tenant directory", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to marshal quotation", err)
	}

	filePath := filepath.Join(tenantDir, record.ID+".json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to write quotation", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "failed to read storage", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		filePath := filepath.Join(s.basePath, entry.Name(), id+".json")
		data, err := os.ReadFile(filePath)
		if err == nil {
			var record Record
			if err := json.Unmarshal(data, &record); err != nil {
				return nil, errors.Wrap(errors.TypeInternal, "failed to unmarshal quotation", err)
			}
			return &record, nil
		}
	}

	return nil, errors.NotFound("quotation", id)
}

func (s *FileStore) List(ctx context.Context, filter *ListFilter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*Record

	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			return nil
		}

		if !matches(&record, filter) {
			return nil
		}

		records = append(records, &record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByCreated(records)
	return paginate(records, filter), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to read storage", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		filePath := filepath.Join(s.basePath, entry.Name(), id+".json")
		if _, err := os.Stat(filePath); err == nil {
			return os.Remove(filePath)
		}
	}

	return errors.NotFound("quotation", id)
}

func (s *FileStore) GetLatest(ctx context.Context, tenantID string) (*Record, error) {
	records, err := s.List(ctx, &ListFilter{TenantID: tenantID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound("quotation for tenant", tenantID)
	}
	return records[0], nil
}

func (s *FileStore) Close() error {
	return nil
}

// MemoryStore is an in-memory storage backend (for testing and ephemeral servers)
type MemoryStore struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, errors.NotFound("quotation", id)
	}
	return record, nil
}

func (s *MemoryStore) List(ctx context.Context, filter *ListFilter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*Record
	for _, record := range s.records {
		if matches(record, filter) {
			records = append(records, record)
		}
	}

	sortByCreated(records)
	return paginate(records, filter), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return errors.NotFound("quotation", id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) GetLatest(ctx context.Context, tenantID string) (*Record, error) {
	records, err := s.List(ctx, &ListFilter{TenantID: tenantID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound("quotation for tenant", tenantID)
	}
	return records[0], nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func matches(record *Record, filter *ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.TenantID != "" && record.TenantID != filter.TenantID {
		return false
	}
	if filter.Currency != "" && record.Currency != filter.Currency {
		return false
	}
	if !filter.Since.IsZero() && record.CreatedAt.Before(filter.Since) {
		return false
	}
	if !filter.Until.IsZero() && record.CreatedAt.After(filter.Until) {
		return false
	}
	return true
}

// sortByCreated orders records newest-first
func sortByCreated(records []*Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func paginate(records []*Record, filter *ListFilter) []*Record {
	if filter == nil {
		return records
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(records) {
			return nil
		}
		records = records[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(records) {
		records = records[:filter.Limit]
	}
	return records
}
