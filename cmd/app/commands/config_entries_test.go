package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConfigChannel is an in-memory ConfigChannel.
type fakeConfigChannel struct {
	values map[string]json.RawMessage
}

func newFakeConfigChannel() *fakeConfigChannel {
	return &fakeConfigChannel{values: make(map[string]json.RawMessage)}
}

func (f *fakeConfigChannel) Set(_ context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[name] = data
	return nil
}

func (f *fakeConfigChannel) Get(_ context.Context, name string, out any) (bool, error) {
	data, ok := f.values[name]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func (f *fakeConfigChannel) Remove(_ context.Context, name string) error {
	delete(f.values, name)
	return nil
}

func TestRunSetConfig(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("stores-json-value", func(t *testing.T) {
		channel := newFakeConfigChannel()

		var out bytes.Buffer
		err := RunSetConfig(ctx, channel, logger, &out, "endpoint", `{"url":"https://example.com"}`)

		require.NoError(t, err)
		require.Contains(t, out.String(), `Config value "endpoint" stored`)
		require.JSONEq(t, `{"url":"https://example.com"}`, string(channel.values["endpoint"]))
	})

	t.Run("invalid-json", func(t *testing.T) {
		err := RunSetConfig(ctx, newFakeConfigChannel(), logger, &bytes.Buffer{}, "endpoint", "{broken")

		require.Error(t, err)
		require.Contains(t, err.Error(), "value must be valid JSON")
	})

	t.Run("empty-name", func(t *testing.T) {
		err := RunSetConfig(ctx, newFakeConfigChannel(), logger, &bytes.Buffer{}, "", `{}`)

		require.Error(t, err)
		require.Contains(t, err.Error(), "name must not be empty")
	})
}

func TestRunGetConfig(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("prints-value", func(t *testing.T) {
		channel := newFakeConfigChannel()
		channel.values["endpoint"] = json.RawMessage(`{"url":"https://example.com"}`)

		var out bytes.Buffer
		err := RunGetConfig(ctx, channel, logger, &out, "endpoint")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"url":"https://example.com"`)
	})

	t.Run("not-found", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGetConfig(ctx, newFakeConfigChannel(), logger, &out, "missing")

		require.NoError(t, err)
		require.Contains(t, out.String(), `Config value "missing" not found`)
	})
}

func TestRunRemoveConfig(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	channel := newFakeConfigChannel()
	channel.values["endpoint"] = json.RawMessage(`{}`)

	var out bytes.Buffer
	err := RunRemoveConfig(ctx, channel, logger, &out, "endpoint")

	require.NoError(t, err)
	require.Contains(t, out.String(), `Config value "endpoint" removed`)
	require.NotContains(t, channel.values, "endpoint")
}
