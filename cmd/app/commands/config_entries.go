package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	vaultUsecase "github.com/allisson/localvault/internal/vault/usecase"
)

// ConfigChannel is the subset of the config channel the commands need.
type ConfigChannel interface {
	Set(ctx context.Context, name string, value any) error
	Get(ctx context.Context, name string, out any) (bool, error)
	Remove(ctx context.Context, name string) error
}

var _ ConfigChannel = (*vaultUsecase.ConfigChannel)(nil)

// RunSetConfig stores a configuration value. The value argument must be a
// JSON document; it is stored as-is through the plaintext config channel.
//
// Requirements: Database must be migrated.
func RunSetConfig(
	ctx context.Context,
	channel ConfigChannel,
	logger *slog.Logger,
	w io.Writer,
	name string,
	value string,
) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	var parsed json.RawMessage
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return fmt.Errorf("value must be valid JSON: %w", err)
	}

	if err := channel.Set(ctx, name, parsed); err != nil {
		return fmt.Errorf("failed to store config value: %w", err)
	}

	logger.Info("config value stored", slog.String("name", name))
	fmt.Fprintf(w, "Config value %q stored\n", name)
	return nil
}

// RunGetConfig retrieves a configuration value and prints it as JSON.
func RunGetConfig(
	ctx context.Context,
	channel ConfigChannel,
	logger *slog.Logger,
	w io.Writer,
	name string,
) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	var value json.RawMessage
	found, err := channel.Get(ctx, name, &value)
	if err != nil {
		return fmt.Errorf("failed to get config value: %w", err)
	}
	if !found {
		fmt.Fprintf(w, "Config value %q not found\n", name)
		return nil
	}

	fmt.Fprintln(w, string(value))
	return nil
}

// RunRemoveConfig deletes a configuration value.
func RunRemoveConfig(
	ctx context.Context,
	channel ConfigChannel,
	logger *slog.Logger,
	w io.Writer,
	name string,
) error {
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	if err := channel.Remove(ctx, name); err != nil {
		return fmt.Errorf("failed to remove config value: %w", err)
	}

	logger.Info("config value removed", slog.String("name", name))
	fmt.Fprintf(w, "Config value %q removed\n", name)
	return nil
}
