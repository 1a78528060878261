package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"pressdesk/internal/channel"
	"pressdesk/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), testLogger())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	return db
}

func TestProfileSaveAndLoadRoundTrip(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	saved := domain.Profile{
		Name:         "anna",
		Role:         "Portavoce",
		Organization: "Comune di Esempio",
		Tones:        []string{"istituzionale", "empatico"},
		CustomTone:   "diretto",
		UseEmoji:     true,
		Channels:     []channel.Channel{channel.Press, channel.X},
		StyleGuide:   "Frasi brevi.",
	}

	if err := db.SaveProfile(ctx, saved); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	loaded, err := db.LoadProfile(ctx, "anna")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}

	if loaded.Role != saved.Role || loaded.Organization != saved.Organization {
		t.Fatalf("unexpected profile: %+v", loaded)
	}

	if len(loaded.Tones) != 2 || loaded.Tones[1] != "empatico" {
		t.Fatalf("unexpected tones: %v", loaded.Tones)
	}

	if len(loaded.Channels) != 2 || loaded.Channels[0] != channel.Press || loaded.Channels[1] != channel.X {
		t.Fatalf("unexpected channels: %v", loaded.Channels)
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	if err := db.SaveProfile(ctx, domain.Profile{Name: "anna", Role: "Portavoce"}); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	if err := db.SaveProfile(ctx, domain.Profile{Name: "anna", Role: "Capo ufficio stampa"}); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	loaded, err := db.LoadProfile(ctx, "anna")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}

	if loaded.Role != "Capo ufficio stampa" {
		t.Fatalf("expected updated role, got %q", loaded.Role)
	}

	names, err := db.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}

	if len(names) != 1 {
		t.Fatalf("expected a single profile, got %v", names)
	}
}

func TestLoadProfileMissingReportsNotFound(t *testing.T) {
	db := testDatabase(t)

	_, err := db.LoadProfile(context.Background(), "nessuno")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestLoadProfileDegradesUnknownChannels(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	// Simulate a row written by an older version with channel names
	// outside the current vocabulary.
	_, err := db.db.ExecContext(ctx,
		"insert into profiles (name, channels) values (?, ?)",
		"vecchio", "myspace,friendster")
	if err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	loaded, err := db.LoadProfile(ctx, "vecchio")
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}

	if len(loaded.Channels) != 1 || loaded.Channels[0] != channel.Social {
		t.Fatalf("expected default {social}, got %v", loaded.Channels)
	}
}

func TestDraftStoreAppendsInOrder(t *testing.T) {
	s := NewDraftStore(filepath.Join(t.TempDir(), "drafts.json"), testLogger())

	for i := range 3 {
		draft := domain.Draft{
			CreatedAt: time.Date(2026, 6, 1, 10, i, 0, 0, time.UTC),
			Input:     fmt.Sprintf("input %d", i),
		}
		if err := s.Append(draft); err != nil {
			t.Fatalf("failed to append draft: %v", err)
		}
	}

	drafts, err := s.List()
	if err != nil {
		t.Fatalf("failed to list drafts: %v", err)
	}

	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}

	if drafts[0].Input != "input 0" || drafts[2].Input != "input 2" {
		t.Fatalf("unexpected draft order: %v", drafts)
	}
}

func TestDraftStoreEvictsOldestPastCap(t *testing.T) {
	s := NewDraftStore(filepath.Join(t.TempDir(), "drafts.json"), testLogger())

	for i := range MaxDrafts + 5 {
		if err := s.Append(domain.Draft{Input: fmt.Sprintf("input %d", i)}); err != nil {
			t.Fatalf("failed to append draft: %v", err)
		}
	}

	drafts, err := s.List()
	if err != nil {
		t.Fatalf("failed to list drafts: %v", err)
	}

	if len(drafts) != MaxDrafts {
		t.Fatalf("expected %d drafts, got %d", MaxDrafts, len(drafts))
	}

	if drafts[0].Input != "input 5" {
		t.Fatalf("expected oldest entries evicted, first is %q", drafts[0].Input)
	}
}

func TestDraftStoreEmptyFileListsNothing(t *testing.T) {
	s := NewDraftStore(filepath.Join(t.TempDir(), "missing.json"), testLogger())

	drafts, err := s.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if drafts != nil {
		t.Fatalf("expected no drafts, got %v", drafts)
	}
}
