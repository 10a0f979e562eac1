package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db       *sql.DB
	settings *SettingsStore
	results  *ResultStore
}

func NewStore(db *sql.DB) *Store {
	qi := newQueryInterceptor(db)
	return &Store{
		db:       db,
		settings: NewSettingsStore(qi),
		results:  NewResultStore(qi),
	}
}

func (s *Store) Settings() *SettingsStore {
	return s.settings
}

func (s *Store) Results() *ResultStore {
	return s.results
}

func (s *Store) Close() error {
	return s.db.Close()
}
