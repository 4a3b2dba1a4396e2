package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tokei/internal/keyring"
	"github.com/julianstephens/tokei/internal/storage"
	"github.com/julianstephens/tokei/internal/storage/postgres"
)

// KeyringSetAPIKeyCmd stores the analysis API key in the OS keyring.
type KeyringSetAPIKeyCmd struct {
	Key string `arg:"" help:"API key for the chat-completions endpoint."`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	ctx.println("✓ API key stored in OS keyring")
	return nil
}

// KeyringDeleteAPIKeyCmd removes the analysis API key.
type KeyringDeleteAPIKeyCmd struct{}

func (cmd *KeyringDeleteAPIKeyCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return err
	}
	ctx.println("✓ API key deleted from OS keyring")
	return nil
}

// KeyringSetConnectionCmd stores a PostgreSQL connection string.
type KeyringSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetConnectionCmd) Run(ctx *Context) error {
	if storage.Resolve(storage.BackendAuto, cmd.ConnectionString) != storage.BackendPostgres {
		return errors.New("connection string must be a postgres:// or postgresql:// URL")
	}
	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.println("   It will be stored as-is in the encrypted OS keyring.")
	}
	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored in OS keyring")
	return nil
}

// KeyringDeleteConnectionCmd removes the stored connection string.
type KeyringDeleteConnectionCmd struct{}

func (cmd *KeyringDeleteConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports keyring availability and stored entries.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.println("✓ OS keyring is available")
	if _, err := keyring.GetAPIKey(); err == nil {
		ctx.println("✓ API key is stored")
	} else {
		ctx.println("ℹ No API key stored")
	}
	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.println("✓ Connection string is stored")
	} else {
		ctx.println("ℹ No connection string stored")
	}
	return nil
}
