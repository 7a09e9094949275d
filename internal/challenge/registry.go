// Package challenge tracks progress milestones that flip to solved exactly once.
package challenge

import (
	"context" // Context for database calls
	"errors"  // Error comparison
	"fmt"     // Error wrapping
	"time"    // Solve timestamps

	"deluxe_membership/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// ErrUnknown is returned for keys with no seeded challenge row
var ErrUnknown = errors.New("unknown challenge")

// Defaults lists the challenges seeded by the migration
var Defaults = []domain.Challenge{
	{
		Key:         domain.FreeDeluxeChallengeKey,
		Name:        "Deluxe Fraud",
		Description: "Obtain a Deluxe Membership without paying for it.",
	},
}

// Registry persists challenge state in the database
type Registry struct {
	db  *gorm.DB
	now func() time.Time // Clock for solved_at
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db, now: time.Now}
}

// SolveIf evaluates predicate once for an unsolved challenge and marks it solved when it holds.
// It reports whether this call performed the transition.
func (r *Registry) SolveIf(ctx context.Context, key string, predicate func() bool) (bool, error) {
	var ch domain.Challenge // Current state of the challenge
	err := r.db.WithContext(ctx).Where(&domain.Challenge{Key: key}).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: %s", ErrUnknown, key)
	}
	if err != nil {
		return false, fmt.Errorf("failed to load challenge %s: %w", key, err)
	}
	if ch.Solved || !predicate() {
		return false, nil // Already solved or condition not met
	}

	// Conditional update so only one caller records the transition
	res := r.db.WithContext(ctx).
		Model(&domain.Challenge{}).
		Where("id = ? AND solved = ?", ch.ID, false).
		Updates(map[string]any{"solved": true, "solved_at": r.now().UnixMilli()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark challenge %s solved: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil // solved concurrently
	}

	logrus.WithFields(logrus.Fields{
		"challenge": key,
		"name":      ch.Name,
	}).Info("Challenge solved")
	return true, nil
}

// List returns all challenges ordered by id
func (r *Registry) List(ctx context.Context) ([]domain.Challenge, error) {
	var challenges []domain.Challenge
	if err := r.db.WithContext(ctx).Order("id").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

// Seed inserts the given challenges that do not exist yet
func (r *Registry) Seed(ctx context.Context, challenges ...domain.Challenge) error {
	for _, c := range challenges {
		row := c // Copy, FirstOrCreate writes into it
		err := r.db.WithContext(ctx).
			Where(&domain.Challenge{Key: c.Key}).
			Attrs(domain.Challenge{Name: c.Name, Description: c.Description}).
			FirstOrCreate(&row).Error
		if err != nil {
			return fmt.Errorf("failed to seed challenge %s: %w", c.Key, err)
		}
	}
	return nil
}
