package storage

import "github.com/julianstephens/tokei/internal/models"

// Provider persists the full day-keyed schedule map. Backends load the whole
// map once and always save it whole.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Schedules
	LoadSchedules() (models.DayMap, error)
	SaveSchedules(models.DayMap) error

	// Utils
	GetConfigPath() string
}
