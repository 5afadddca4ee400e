// Package db selects the concrete storage driver from the profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/finsage/finsage/internal/profile"
	"github.com/finsage/finsage/store"
	"github.com/finsage/finsage/store/db/postgres"
	"github.com/finsage/finsage/store/db/sqlite"
)

// NewDBDriver creates a new database driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "sqlite":
		return sqlite.NewDB(profile)
	case "postgres":
		return postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver: %s", profile.Driver)
	}
}
