package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"reelstgram-backend/internal/models"
	"reelstgram-backend/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Top-level collection keys, mirroring the reference clients' local
// storage layout.
const (
	KeyChannels  = "channels"
	KeyUsers     = "users"
	KeyAnalytics = "analytics"
)

// Store persists whole JSON collections under fixed keys. Every mutation
// re-reads the full collection, applies one change and writes the whole
// document back. A single mutex serializes all read-modify-write cycles,
// which is what makes the naive whole-collection model safe against lost
// updates in-process.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NewDefault wires the store to the shared repository connection.
func NewDefault() *Store {
	return New(repository.DB)
}

func (s *Store) read(key string, out any) error {
	var entry repository.Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) write(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := repository.Entry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Channels returns the full channel collection; a missing key is an
// empty collection, not an error.
func (s *Store) Channels() ([]models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var channels []models.Channel
	if err := s.read(KeyChannels, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// SaveChannels replaces the persisted channel collection.
func (s *Store) SaveChannels(channels []models.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(KeyChannels, channels)
}

// UpdateChannels runs fn over the full channel collection under the
// single writer and persists the result. fn gets its own copy; nothing
// is written when it returns an error.
func (s *Store) UpdateChannels(fn func(channels []models.Channel) ([]models.Channel, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var channels []models.Channel
	if err := s.read(KeyChannels, &channels); err != nil {
		return err
	}
	updated, err := fn(channels)
	if err != nil {
		return err
	}
	return s.write(KeyChannels, updated)
}

// Users returns the user collection keyed by user id.
func (s *Store) Users() (map[string]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := map[string]models.User{}
	if err := s.read(KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUsers runs fn over the user collection under the single writer.
func (s *Store) UpdateUsers(fn func(users map[string]models.User) (map[string]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := map[string]models.User{}
	if err := s.read(KeyUsers, &users); err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return s.write(KeyUsers, updated)
}

// AppendAnalytics appends one event to the write-only analytics log.
// The application never reads this collection back.
func (s *Store) AppendAnalytics(event models.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []models.AnalyticsEvent
	if err := s.read(KeyAnalytics, &events); err != nil {
		return err
	}
	events = append(events, event)
	return s.write(KeyAnalytics, events)
}
