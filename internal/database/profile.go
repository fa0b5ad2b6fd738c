package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Profile is the single persisted user record. BirthDate is YYYY-MM-DD;
// BirthTime (HH:MM) and BirthPlace may be absent. MoonSign is derived
// from the birth date at save time, not entered by the user.
type Profile struct {
	Name       string    `json:"name"`
	BirthDate  string    `json:"birthDate"`
	BirthTime  *string   `json:"birthTime,omitempty"`
	BirthPlace *string   `json:"birthPlace,omitempty"`
	MoonSign   string    `json:"moonSign"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// profileRowID pins the profile to one well-known row. There is exactly
// one profile per installation; saving overwrites it.
const profileRowID = 1

// GetProfile returns the stored profile, or ErrNotFound when none has
// been saved yet.
func (db *DB) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	var updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT name, birth_date, birth_time, birth_place, moon_sign, updated_at
		FROM user_profile WHERE id = ?
	`, profileRowID).Scan(&p.Name, &p.BirthDate, &p.BirthTime, &p.BirthPlace, &p.MoonSign, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if t, err := time.Parse("2006-01-02 15:04:05", updatedAt); err == nil {
		p.UpdatedAt = t
	}

	return &p, nil
}

// SaveProfile creates or overwrites the profile.
func (db *DB) SaveProfile(ctx context.Context, p *Profile) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO user_profile (id, name, birth_date, birth_time, birth_place, moon_sign, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			birth_date = excluded.birth_date,
			birth_time = excluded.birth_time,
			birth_place = excluded.birth_place,
			moon_sign = excluded.moon_sign,
			updated_at = datetime('now')
	`, profileRowID, p.Name, p.BirthDate, p.BirthTime, p.BirthPlace, p.MoonSign)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile. Deleting an absent profile is not
// an error.
func (db *DB) DeleteProfile(ctx context.Context) error {
	if _, err := db.ExecContext(ctx,
		"DELETE FROM user_profile WHERE id = ?", profileRowID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
