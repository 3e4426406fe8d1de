package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/keyring"
)

// KeyringSetCmd stores a secret in the OS keyring
type KeyringSetCmd struct {
	Key   string `arg:"" help:"Key to set (database-connection or api-token)."`
	Value string `arg:"" optional:"" help:"Value to store. An api-token is generated when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.ParseKey(cmd.Key)
	if err != nil {
		return err
	}

	value := cmd.Value
	switch key {
	case keyring.ConnectionString:
		if !docstore.IsPostgresConnString(value) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := docstore.ValidateConnString(value); err != nil {
			if !errors.Is(err, docstore.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	case keyring.APIToken:
		if value == "" {
			value = strings.ReplaceAll(uuid.New().String(), "-", "")
			ctx.Printf("Generated API token: %s\n", value)
		}
	}

	if err := keyring.Set(key, value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored successfully in OS keyring\n", key)
	return nil
}

// KeyringGetCmd prints a secret from the OS keyring, masking passwords
type KeyringGetCmd struct {
	Key string `arg:"" help:"Key to read (database-connection or api-token)."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	key, err := keyring.ParseKey(cmd.Key)
	if err != nil {
		return err
	}
	value, err := keyring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'growlog keyring set %s' to store one", key, key)
		}
		return err
	}

	if key == keyring.ConnectionString {
		value = maskPassword(value)
	}
	ctx.Println(value)
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	Key string `arg:"" help:"Key to delete (database-connection or api-token)."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	key, err := keyring.ParseKey(cmd.Key)
	if err != nil {
		return err
	}
	if err := keyring.Delete(key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", key)
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", key)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	for _, key := range keyring.Keys {
		if _, err := keyring.Get(key); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", key)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored in keyring\n", key)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}
