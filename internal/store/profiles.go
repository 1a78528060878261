package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pressdesk/internal/channel"
	"pressdesk/internal/domain"
)

// ErrProfileNotFound reports a lookup for a profile that was never
// saved.
var ErrProfileNotFound = errors.New("profile not found")

// SaveProfile upserts a profile keyed by its name.
func (d *Database) SaveProfile(ctx context.Context, profile domain.Profile) error {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return errors.New("profile name is empty")
	}

	channelNames := make([]string, 0, len(profile.Channels))
	for _, c := range profile.Channels {
		channelNames = append(channelNames, c.String())
	}

	query := `insert into profiles
		(name, role, organization, tones, custom_tone, use_emoji, channels, style_guide, updated_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, current_timestamp)
		on conflict(name) do update set
			role = excluded.role,
			organization = excluded.organization,
			tones = excluded.tones,
			custom_tone = excluded.custom_tone,
			use_emoji = excluded.use_emoji,
			channels = excluded.channels,
			style_guide = excluded.style_guide,
			updated_at = current_timestamp`

	_, err := d.db.ExecContext(ctx, query,
		name,
		profile.Role,
		profile.Organization,
		strings.Join(profile.Tones, ","),
		profile.CustomTone,
		profile.UseEmoji,
		strings.Join(channelNames, ","),
		profile.StyleGuide,
	)

	return err
}

// LoadProfile fetches a profile by name. Stored channel values are
// re-validated through the closed vocabulary, so rows written by older
// versions with unknown channel names degrade to the default set.
func (d *Database) LoadProfile(ctx context.Context, name string) (domain.Profile, error) {
	query := `select name, role, organization, tones, custom_tone, use_emoji, channels, style_guide
		from profiles where name = ?`

	var profile domain.Profile
	var tones, channels string

	err := d.db.QueryRowContext(ctx, query, strings.TrimSpace(name)).Scan(
		&profile.Name,
		&profile.Role,
		&profile.Organization,
		&tones,
		&profile.CustomTone,
		&profile.UseEmoji,
		&channels,
		&profile.StyleGuide,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("scan row: %w", err)
	}

	profile.Tones = splitCSV(tones)
	profile.Channels = channel.ParseSet(splitCSV(channels))

	return profile, nil
}

// ListProfiles returns every saved profile name.
func (d *Database) ListProfiles(ctx context.Context) ([]string, error) {
	query := "select name from profiles order by name"

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "ListProfiles")
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return names, nil
}

func splitCSV(s string) []string {
	var values []string

	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}
