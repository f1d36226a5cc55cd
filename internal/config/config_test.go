package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, format validations and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing resource root.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Bad listen address.
	cfg = &Config{
		ResourceRoot:  "/srv/snapp-resources",
		ListenAddress: "bad:address",
	}

	err = Validate(cfg)
	require.Error(t, err)

	// Okay, defaults filled.
	cfg = &Config{
		ResourceRoot: "/srv/snapp-resources",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, int64(DefaultMaxProjectBytes), cfg.MaxProjectBytes)

	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		ResourceRoot:  "/srv/snapp-resources",
		ListenAddress: "127.0.0.1:8073",
		Timeout:       30 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ResourceRoot, loaded.ResourceRoot)
	require.Equal(t, cfg.ListenAddress, loaded.ListenAddress)
	require.Equal(t, cfg.Timeout, loaded.Timeout)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestDefault leaves the resource root empty on purpose.
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Empty(t, cfg.ResourceRoot)
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
}
