// Package seeders populates the database with development fixtures.
package seeders

import (
	"fmt"

	"gorm.io/gorm"
)

// Seeder fills a slice of the database with sample data. Seeders must be
// idempotent; running them twice should not duplicate rows.
type Seeder interface {
	Name() string
	Run(db *gorm.DB) error
}

var registry []Seeder

// Register adds a seeder to the global registry.
func Register(s Seeder) {
	registry = append(registry, s)
}

// RunAll executes every registered seeder in registration order.
func RunAll(db *gorm.DB) error {
	for _, s := range registry {
		fmt.Printf("  Seeding: %s\n", s.Name())
		if err := s.Run(db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
	}
	return nil
}
