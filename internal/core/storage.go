package core

import (
	"fmt"
	"os"

	"etymon/internal/infra/persistence/memory"
	"etymon/internal/infra/persistence/postgres"
	"etymon/internal/infra/persistence/sqlite"
	"etymon/internal/lexicon"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

type (
	Transaction     = lexicon.Transaction
	TransactionView = lexicon.TransactionView
	PersistentStore = lexicon.PersistentStore
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	ETYMON_DB_DRIVER: memory|sqlite|postgres (default sqlite)
//	ETYMON_DB_PATH: path to sqlite file (default ./etymon.db)
//	ETYMON_DB_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(engine *RulesEngine) (PersistentStore, error) {
	driver := os.Getenv("ETYMON_DB_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("ETYMON_DB_PATH"), engine)
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("ETYMON_DB_DSN"), engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
