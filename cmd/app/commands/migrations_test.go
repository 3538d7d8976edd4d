package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("missing-migrations-dir", func(t *testing.T) {
		// The file source resolves relative to the working directory, which
		// has no migrations tree during tests
		err := RunMigrations(logger, filepath.Join(t.TempDir(), "localvault.db"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
