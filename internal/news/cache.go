package news

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pressdesk/internal/domain"
)

type cacheFile struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Items     []domain.NewsItem `json:"items"`
}

func loadCache(path string) ([]domain.NewsItem, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var cached cacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode cache file: %w", err)
	}

	return cached.Items, nil
}

func saveCache(path string, items []domain.NewsItem) error {
	if path == "" {
		return nil
	}

	data, err := json.MarshalIndent(cacheFile{
		FetchedAt: time.Now().UTC(),
		Items:     items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}
