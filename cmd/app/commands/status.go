package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/allisson/localvault/internal/errors"
	keysDomain "github.com/allisson/localvault/internal/keys/domain"
	"github.com/allisson/localvault/internal/metrics"
	vaultService "github.com/allisson/localvault/internal/vault/service"
)

// CryptoProbe reports whether authenticated encryption is usable.
type CryptoProbe interface {
	Available() bool
}

// KeyStore is the subset of the key repository the status command needs.
type KeyStore interface {
	Get(ctx context.Context, id string) (*keysDomain.EncryptionKey, error)
}

// RunStatus reports crypto availability, device key presence, per-tier entry
// counts and, when metrics are enabled, a snapshot of the collected metrics.
//
// A tier that cannot be read is reported as unavailable instead of failing
// the whole command; the same goes for an unreadable key row.
func RunStatus(
	ctx context.Context,
	stores []vaultService.EntryStore,
	probe CryptoProbe,
	keys KeyStore,
	provider *metrics.Provider,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	type tierStatus struct {
		Tier      string `json:"tier"`
		Available bool   `json:"available"`
		Entries   int    `json:"entries"`
	}

	cryptoAvailable := probe.Available()

	keyPresent := false
	if _, err := keys.Get(ctx, keysDomain.DeviceKeyID); err == nil {
		keyPresent = true
	} else if !apperrors.Is(err, keysDomain.ErrKeyNotFound) {
		logger.Warn("device key row unreadable", slog.Any("error", err))
	}

	var tiers []tierStatus
	for _, store := range stores {
		storeKeys, err := store.Keys(ctx, "")
		if err != nil {
			logger.Warn("storage tier unavailable",
				slog.String("tier", string(store.Tier())),
				slog.Any("error", err),
			)
			tiers = append(tiers, tierStatus{Tier: string(store.Tier())})
			continue
		}
		tiers = append(tiers, tierStatus{
			Tier:      string(store.Tier()),
			Available: true,
			Entries:   len(storeKeys),
		})
	}

	if format == "json" {
		return writeJSON(w, map[string]any{
			"crypto_available": cryptoAvailable,
			"key_present":      keyPresent,
			"tiers":            tiers,
		})
	}

	fmt.Fprintf(w, "Crypto:     %s\n", availability(cryptoAvailable))
	fmt.Fprintf(w, "Device key: %s\n", presence(keyPresent))

	for _, tier := range tiers {
		if !tier.Available {
			fmt.Fprintf(w, "%-10s unavailable\n", tier.Tier)
			continue
		}
		fmt.Fprintf(w, "%-10s %d entr%s\n", tier.Tier, tier.Entries, plural(tier.Entries))
	}

	if provider != nil {
		families, err := provider.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		if len(families) > 0 {
			fmt.Fprintln(w, "\nMetrics:")
			for _, family := range families {
				fmt.Fprintf(w, "  %s (%d series)\n", family.GetName(), len(family.GetMetric()))
			}
		}
	}

	return nil
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "absent"
}
