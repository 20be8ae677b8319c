package model

// ================ Config ================

// DataConfig locates the seed data files for the lookup store.
type DataConfig struct {
	Dir string `envconfig:"DATA_DIR" default:"mock_data"`
}

// SessionConfig controls the interactive chat surface.
type SessionConfig struct {
	TTL        string `envconfig:"SESSION_TTL" default:"15m"`
	MaxEntries int    `envconfig:"SESSION_MAX_ENTRIES" default:"50"`
}
