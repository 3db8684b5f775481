package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_number VARCHAR(64) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		color VARCHAR(16) NOT NULL DEFAULT '',
		schedule TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		start_date DATE,
		waste_type TEXT NOT NULL DEFAULT '',
		combustible_days TEXT NOT NULL DEFAULT '{}',
		non_combustible_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		non_combustible_days TEXT NOT NULL DEFAULT '{}',
		vehicle_id UUID,
		status TEXT NOT NULL DEFAULT '未収集',
		manual_assignment BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// vehicle_id is deliberately not a foreign key: requests tolerate a
	// dangling reference after vehicle deletion.
	`CREATE INDEX IF NOT EXISTS idx_collections_vehicle_id ON collections (vehicle_id) WHERE vehicle_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_collections_status ON collections (status);`,
	`CREATE INDEX IF NOT EXISTS idx_collections_created_at ON collections (created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS area_rules (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		area_pattern TEXT NOT NULL,
		vehicle_id UUID NOT NULL,
		priority INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_area_rules_priority ON area_rules (priority);`,
	`CREATE TABLE IF NOT EXISTS waste_types (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		type_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		valid_from DATE,
		valid_until DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_waste_types_display_order ON waste_types (display_order);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
