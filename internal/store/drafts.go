package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"pressdesk/internal/domain"
)

// MaxDrafts bounds the draft list; the oldest entries are evicted once
// the cap is exceeded.
const MaxDrafts = 50

// DraftStore is an append-only JSON-file list of generation snapshots.
type DraftStore struct {
	path string
	mu   sync.Mutex
	log  *slog.Logger
}

func NewDraftStore(path string, log *slog.Logger) *DraftStore {
	return &DraftStore{
		path: path,
		log:  log,
	}
}

// Append adds a draft snapshot, evicting the oldest entries past
// MaxDrafts, and rewrites the whole file.
func (s *DraftStore) Append(draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.readLocked()
	if err != nil {
		return err
	}

	drafts = append(drafts, draft)
	if len(drafts) > MaxDrafts {
		drafts = drafts[len(drafts)-MaxDrafts:]
	}

	return s.writeLocked(drafts)
}

// List returns every stored draft, oldest first.
func (s *DraftStore) List() ([]domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked()
}

func (s *DraftStore) readLocked() ([]domain.Draft, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drafts file: %w", err)
	}

	var drafts []domain.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts file: %w", err)
	}

	return drafts, nil
}

func (s *DraftStore) writeLocked(drafts []domain.Draft) error {
	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drafts: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write drafts file: %w", err)
	}

	return nil
}
