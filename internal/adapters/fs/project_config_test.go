package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
)

func runtimeConfig(root string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot:     root,
		DataDir:         filepath.Join(root, ".coffer"),
		Storage:         config.StorageConfig{Backend: config.BackendSQLite},
		Guards:          domain.DefaultGuards(),
		DefaultLockDays: 5,
	}
}

func TestProjectConfigAdapter_Write(t *testing.T) {
	root := t.TempDir()
	adapter := NewProjectConfigAdapter(runtimeConfig(root))
	assert.False(t, adapter.Exists())

	path, err := adapter.Write(false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "coffer.toml"), path)
	assert.True(t, adapter.Exists())
	assert.DirExists(t, filepath.Join(root, ".coffer"))

	var written config.CofferFileConfig
	_, err = toml.DecodeFile(path, &written)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, written.Storage.Backend)
	assert.Equal(t, 5, written.Proposals.DefaultLockDays)
	assert.Equal(t, config.DefaultExpenseCategories, written.Expenses.Categories)
	assert.True(t, written.Guards.EnforcePause)
}

func TestProjectConfigAdapter_KeepsExistingFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "coffer.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))
	adapter := NewProjectConfigAdapter(runtimeConfig(root))

	_, err := adapter.Write(false)
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "# mine\n", string(data))

	_, err = adapter.Write(true)
	require.NoError(t, err)
	data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "[storage]")
	assert.NoFileExists(t, path+".tmp")
}
