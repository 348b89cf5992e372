package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bitbucket.org/mmdatafocus/quotes_backend/config"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
)

// Bucket is the raw storage capability underneath the quote store: one named
// blob that may be absent, unreadable, or refuse writes (quota, disabled fs).
type Bucket interface {
	// Read returns (nil, nil) when the bucket does not exist yet.
	Read() ([]byte, error)
	Write(data []byte) error
	Delete() error
}

// FileBucket keeps the blob in a single JSON file under the data dir.
type FileBucket struct {
	Path string
}

func NewFileBucket(path string) *FileBucket {
	return &FileBucket{Path: path}
}

func (b *FileBucket) Read() ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *FileBucket) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crashed write never corrupts the bucket.
	tmp := b.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.Path)
}

func (b *FileBucket) Delete() error {
	err := os.Remove(b.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryBucket is the in-memory substitute used by tests.
type MemoryBucket struct {
	mu       sync.Mutex
	data     []byte
	FailNext bool
}

func (b *MemoryBucket) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBucket) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailNext {
		b.FailNext = false
		return fmt.Errorf("bucket quota exceeded")
	}
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}

func (b *MemoryBucket) Delete() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
	return nil
}

// BucketQuoteStore implements QuoteStore over a Bucket. The read-modify-write
// cycle is serialized behind a mutex; this is a single-process local store.
type BucketQuoteStore struct {
	mu     sync.Mutex
	bucket Bucket
}

func NewQuoteStore(bucket Bucket) *BucketQuoteStore {
	return &BucketQuoteStore{bucket: bucket}
}

// NewDefaultQuoteStore opens the per-install file bucket from config.
func NewDefaultQuoteStore() *BucketQuoteStore {
	return NewQuoteStore(NewFileBucket(config.GetSavedQuotesPath()))
}

// load reads the whole bucket. Absent or corrupted content degrades to an
// empty list — logged, never propagated as a failure.
func (s *BucketQuoteStore) load() []SavedQuote {
	data, err := s.bucket.Read()
	if err != nil {
		config.LogError(config.GetLogger(), "models", "load", "reading saved quotes bucket", nil, err)
		return []SavedQuote{}
	}
	if len(data) == 0 {
		return []SavedQuote{}
	}

	var quotes []SavedQuote
	if err := json.Unmarshal(data, &quotes); err != nil {
		config.LogError(config.GetLogger(), "models", "load", "corrupted saved quotes bucket", nil, err)
		return []SavedQuote{}
	}
	return quotes
}

func (s *BucketQuoteStore) persist(quotes []SavedQuote) error {
	data, err := json.Marshal(quotes)
	if err != nil {
		return err
	}
	if err := s.bucket.Write(data); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrorStorageFailed, err)
	}
	return nil
}

func (s *BucketQuoteStore) List() ([]SavedQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Save appends a new record and persists the whole list back. On a failed
// persist the record is not considered saved and an error is returned.
func (s *BucketQuoteStore) Save(formData QuoteFormData) (*SavedQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes := s.load()

	saved := SavedQuote{
		ID:       utils.GenerateQuoteId(),
		Name:     quoteDisplayName(&formData),
		FormData: formData,
		SavedAt:  time.Now().UTC(),
	}
	quotes = append(quotes, saved)

	if err := s.persist(quotes); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *BucketQuoteStore) GetById(id string) (*SavedQuote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, quote := range s.load() {
		if quote.ID == id {
			q := quote
			return &q, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

// DeleteById removes one record. Returns true iff a record existed and the
// shortened list was persisted.
func (s *BucketQuoteStore) DeleteById(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes := s.load()
	filtered := quotes[:0:0]
	for _, quote := range quotes {
		if quote.ID != id {
			filtered = append(filtered, quote)
		}
	}
	if len(filtered) == len(quotes) {
		return false, nil
	}

	if err := s.persist(filtered); err != nil {
		return false, err
	}
	return true, nil
}

func (s *BucketQuoteStore) DeleteAll() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bucket.Delete(); err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrorStorageFailed, err)
	}
	return true, nil
}
