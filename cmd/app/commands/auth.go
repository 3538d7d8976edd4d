package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/localvault/internal/vault/usecase"
)

// AuthChannel is the subset of the auth channel the commands need.
type AuthChannel interface {
	SetCredentials(ctx context.Context, credentials *vaultDomain.Credentials) error
	GetCredentials(ctx context.Context) (*vaultDomain.Credentials, error)
	HasCredentials(ctx context.Context) (bool, error)
	RemoveCredentials(ctx context.Context) error
}

var _ AuthChannel = (*vaultUsecase.AuthChannel)(nil)

// RunSetAuth stores bearer credentials through the auth channel.
//
// Requirements: Database must be migrated.
func RunSetAuth(
	ctx context.Context,
	channel AuthChannel,
	logger *slog.Logger,
	w io.Writer,
	token string,
	scheme string,
) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}
	if scheme == "" {
		scheme = "Bearer"
	}

	credentials := &vaultDomain.Credentials{Token: token, Scheme: scheme}
	if err := channel.SetCredentials(ctx, credentials); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	logger.Info("credentials stored", slog.String("scheme", scheme))
	fmt.Fprintln(w, "Credentials stored")
	return nil
}

// RunGetAuth retrieves the stored credentials and prints them.
// Absent or unreadable credentials print as a not-found message, not an error.
func RunGetAuth(
	ctx context.Context,
	channel AuthChannel,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	credentials, err := channel.GetCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to get credentials: %w", err)
	}

	if credentials == nil {
		if format == "json" {
			return writeJSON(w, map[string]any{"found": false})
		}
		fmt.Fprintln(w, "No credentials stored")
		return nil
	}

	if format == "json" {
		return writeJSON(w, map[string]any{
			"found":  true,
			"token":  credentials.Token,
			"scheme": credentials.Scheme,
		})
	}

	fmt.Fprintf(w, "Scheme: %s\nToken: %s\n", credentials.Scheme, credentials.Token)
	return nil
}

// RunHasAuth reports whether credentials are stored.
func RunHasAuth(
	ctx context.Context,
	channel AuthChannel,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	has, err := channel.HasCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to check credentials: %w", err)
	}

	if format == "json" {
		return writeJSON(w, map[string]any{"found": has})
	}

	if has {
		fmt.Fprintln(w, "Credentials present")
	} else {
		fmt.Fprintln(w, "No credentials stored")
	}
	return nil
}

// RunRemoveAuth deletes the stored credentials.
func RunRemoveAuth(
	ctx context.Context,
	channel AuthChannel,
	logger *slog.Logger,
	w io.Writer,
) error {
	if err := channel.RemoveCredentials(ctx); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}

	logger.Info("credentials removed")
	fmt.Fprintln(w, "Credentials removed")
	return nil
}
