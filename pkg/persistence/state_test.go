package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stactl/stactl-go/pkg/wifi"
)

func TestStore(t *testing.T) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "nested", "state.json"))

		last := 2
		at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
		state := &SelectionState{
			LastSelected:   &last,
			LastSelectedAt: at,
			Networks: []NetworkStatus{
				{
					NetworkID:  1,
					SSID:       "home",
					Disabled:   wifi.DisableWrongPassword,
					DisabledAt: at,
					Failures:   map[wifi.DisableReason]int{wifi.DisableAuthenticationFailure: 2},
				},
				{NetworkID: 2, SSID: "cafe", HasEverConnected: true, LastConnectedBSSID: "cc:cc:cc:cc:cc:01"},
			},
		}
		require.NoError(t, store.Save(state))
		assert.Equal(t, StateVersion, state.Version)
		assert.False(t, state.SavedAt.IsZero())

		got, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.LastSelected)
		assert.Equal(t, 2, *got.LastSelected)
		assert.True(t, got.LastSelectedAt.Equal(at))

		home, ok := got.Network(1, "home")
		require.True(t, ok)
		assert.Equal(t, wifi.DisableWrongPassword, home.Disabled)
		assert.Equal(t, 2, home.Failures[wifi.DisableAuthenticationFailure])

		_, ok = got.Network(1, "renamed")
		assert.False(t, ok, "status is tied to the ssid")
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "nonexistent.json"))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("LoadCorrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := NewStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("LoadNewerVersion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0o600))
		_, err := NewStore(path).Load()
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, store.Save(&SelectionState{}))
		require.NoError(t, store.Clear())
		_, err := os.Stat(store.Path())
		assert.True(t, os.IsNotExist(err))
		assert.NoError(t, store.Clear(), "clearing twice is fine")
	})
}
