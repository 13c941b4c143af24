// Package storage provides journal.Storage backends.
//
// MemoryStorage keeps records in a map and is meant for tests and short
// lived processes. SQLiteStorage persists records with the pure-Go
// modernc.org/sqlite driver in WAL mode.
//
// New selects a backend from config.JournalConfig:
//
//	store, err := storage.New(cfg.Journal)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package storage
