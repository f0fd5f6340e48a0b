package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestProvider(t *testing.T) {
	t.Run("defaults without coffer.toml", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := Provider(SetupViper(dir))
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, ".coffer"), cfg.DataDir)
		assert.Equal(t, config.BackendJSON, cfg.Storage.Backend)
		assert.Equal(t, domain.DefaultGuards(), cfg.Guards)
		assert.Equal(t, config.DefaultExpenseCategories, cfg.ExpenseCategories)
		assert.Equal(t, 3, cfg.DefaultLockDays)
		assert.Equal(t, time.Minute, cfg.Timeout)
		assert.Empty(t, cfg.ConfigSource)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "coffer.toml", `
[storage]
backend = "sqlite"

[guards]
reject_duplicate_votes = false

[actor]
user_id = "user-2"

[expenses]
categories = ["Rent", "Travel"]
`)

		cfg, err := Provider(SetupViper(dir))
		require.NoError(t, err)

		assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
		assert.False(t, cfg.Guards.RejectDuplicateVotes)
		assert.True(t, cfg.Guards.RequirePending)
		assert.True(t, cfg.Guards.EnforceTimeLock)
		assert.True(t, cfg.Guards.EnforcePause)
		assert.Equal(t, "user-2", cfg.ActorID)
		assert.Equal(t, []string{"Rent", "Travel"}, cfg.ExpenseCategories)
		assert.Equal(t, filepath.Join(dir, "coffer.toml"), cfg.ConfigSource)
	})

	t.Run("expands variables from .env", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".env", "COFFER_TEST_ACTOR=user-from-env\nCOFFER_TEST_DATA=state/coffer.db\n")
		writeFile(t, dir, ".env.local", "COFFER_TEST_ACTOR=user-from-local\n")
		writeFile(t, dir, "coffer.toml", `
[storage]
backend = "sqlite"
path = "${COFFER_TEST_DATA}"

[actor]
user_id = "${COFFER_TEST_ACTOR}"
`)
		t.Cleanup(func() {
			os.Unsetenv("COFFER_TEST_ACTOR")
			os.Unsetenv("COFFER_TEST_DATA")
		})

		cfg, err := Provider(SetupViper(dir))
		require.NoError(t, err)

		assert.Equal(t, "user-from-local", cfg.ActorID)
		assert.Equal(t, "state/coffer.db", cfg.Storage.Path)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "coffer.toml", "[actor]\nuser_id = \"user-1\"\n")
		t.Setenv("COFFER_AS", "user-9")
		t.Setenv("COFFER_STORAGE_BACKEND", "sqlite")

		cfg, err := Provider(SetupViper(dir))
		require.NoError(t, err)

		assert.Equal(t, "user-9", cfg.ActorID)
		assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	})

	t.Run("flags override file", func(t *testing.T) {
		dir := t.TempDir()
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Bool("non-interactive", false, "")
		flags.Bool("json", false, "")
		flags.String("as", "", "")
		require.NoError(t, flags.Parse([]string{"--non-interactive", "--as", "user-3"}))

		v := SetupViper(dir)
		BindFlags(v, flags)
		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.True(t, cfg.NonInteractive)
		assert.False(t, cfg.JSON)
		assert.Equal(t, "user-3", cfg.ActorID)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "coffer.toml", "[guards]\nenforce_quorum = true\n")

		_, err := Provider(SetupViper(dir))
		assert.ErrorContains(t, err, "guards.enforce_quorum")
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "coffer.toml", "[storage\n")

		_, err := Provider(SetupViper(dir))
		assert.ErrorContains(t, err, "failed to parse coffer.toml")
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "coffer.toml", "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := findProjectRootFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	_, err = findProjectRootFrom(t.TempDir())
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestEncodeCofferConfig_RoundTrip(t *testing.T) {
	want := config.DefaultCofferFileConfig()
	want.Actor.UserID = "user-1"

	data, err := EncodeCofferConfig(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# coffer project configuration")
	assert.Contains(t, string(data), "[guards]")

	got := &config.CofferFileConfig{}
	_, err = toml.Decode(string(data), got)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
