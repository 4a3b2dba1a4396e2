package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/tokei/internal/storage/diskv"
	"github.com/julianstephens/tokei/internal/storage/jsonfile"
	"github.com/julianstephens/tokei/internal/storage/postgres"
	"github.com/julianstephens/tokei/internal/storage/sqlite"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendAuto     Backend = "auto"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendJSON     Backend = "json"
	BackendDiskv    Backend = "diskv"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*jsonfile.Store)(nil)
	_ Provider = (*diskv.Store)(nil)
)

// IsPostgresURL reports whether target is a PostgreSQL connection URL.
func IsPostgresURL(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	return postgres.HasEmbeddedCredentials(connStr)
}

// Resolve picks the concrete backend for target when backend is auto or
// empty: connection URLs select postgres, .json files select the JSON
// document store, anything else is a SQLite database path.
func Resolve(backend Backend, target string) Backend {
	if backend != "" && backend != BackendAuto {
		return backend
	}
	switch {
	case IsPostgresURL(target):
		return BackendPostgres
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// New constructs the provider for backend at target. Target is a file path,
// a directory (diskv), or a connection string (postgres).
func New(backend Backend, target string) (Provider, error) {
	switch Resolve(backend, target) {
	case BackendSQLite:
		return sqlite.NewStore(target), nil
	case BackendPostgres:
		if HasEmbeddedCredentials(target) {
			return nil, postgres.ErrEmbeddedCredentials
		}
		return postgres.New(target), nil
	case BackendJSON:
		return jsonfile.New(target), nil
	case BackendDiskv:
		return diskv.New(target), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
