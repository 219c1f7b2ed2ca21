package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/parentcopilot/internal/profile"
	"github.com/hrygo/parentcopilot/store"
	"github.com/hrygo/parentcopilot/store/db/memory"
	"github.com/hrygo/parentcopilot/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(p *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch p.Driver {
	case profile.DriverSQLite:
		driver, err = sqlite.NewDB(p)
	case profile.DriverMemory:
		driver = memory.NewDB()
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'memory' are supported", p.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
