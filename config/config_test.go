package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := LoadConfigFrom(path)

	assert.Equal(t, DefaultContentOffsetPercent, cfg.Sheet.ContentOffsetPercent)
	assert.Equal(t, DefaultHideByScrollBorderDp, cfg.Sheet.HideByScrollBorderDp)
	assert.False(t, cfg.Sheet.HideByScroll)
	_, err := os.Stat(path)
	require.NoError(t, err, "default config should be written on first load")
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Telegram = TelegramConfig{PhoneNumber: "+15550000", AppID: 42, AppHash: "hash"}
	cfg.Sheet.HideByScroll = true
	cfg.Sheet.HeaderRows = 2

	require.NoError(t, SaveConfigTo(path, cfg))
	loaded := LoadConfigFrom(path)

	assert.Equal(t, cfg.Telegram, loaded.Telegram)
	assert.True(t, loaded.Sheet.HideByScroll)
	assert.Equal(t, 2, loaded.Sheet.HeaderRows)
	assert.True(t, loaded.Telegram.Configured())
}

func TestLoadConfigNormalizesOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `
[sheet]
content_offset_percent = 150
hide_by_scroll_border_dp = -1
animation_fps = 0
composer_rows = -3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := LoadConfigFrom(path)

	assert.Equal(t, DefaultContentOffsetPercent, cfg.Sheet.ContentOffsetPercent)
	assert.Equal(t, DefaultHideByScrollBorderDp, cfg.Sheet.HideByScrollBorderDp)
	assert.Equal(t, DefaultAnimationFPS, cfg.Sheet.AnimationFPS)
	assert.Equal(t, 0, cfg.Sheet.ComposerRows)
}

func TestLoadConfigBacksUpCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[sheet\nbroken = "), 0o600))

	cfg := LoadConfigFrom(path)
	assert.Equal(t, DefaultConfig().Sheet, cfg.Sheet)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.Contains(e.Name(), ".corrupt.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestTelegramConfigured(t *testing.T) {
	assert.False(t, TelegramConfig{}.Configured())
	assert.False(t, TelegramConfig{AppID: 1, AppHash: "x"}.Configured())
	assert.True(t, TelegramConfig{AppID: 1, AppHash: "x", PhoneNumber: "+1"}.Configured())
}

func TestStateRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	state := LoadState(dir)
	assert.Empty(t, state.LastPage)
	_, err := os.Stat(filepath.Join(dir, StateFileName))
	assert.True(t, os.IsNotExist(err), "loading must not create the file")

	require.NoError(t, state.SetLastPage("Settings"))
	assert.Equal(t, "Settings", LoadState(dir).LastPage)

	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("{"), 0o600))
	broken := LoadState(dir)
	assert.Empty(t, broken.LastPage)
	require.NoError(t, broken.SetLastPage("Chats"), "a broken file is overwritten")
	assert.Equal(t, "Chats", LoadState(dir).LastPage)
}

func TestStateWithoutFile(t *testing.T) {
	assert.Error(t, (&State{}).Save())
}

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	lock := NewFileLock(path)

	require.NoError(t, lock.Lock())
	assert.Error(t, lock.Lock(), "lock already held")
	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock(), "unlocking a free lock")

	require.NoError(t, lock.RLock())
	other := NewFileLock(path)
	require.NoError(t, other.RLock(), "shared locks coexist")
	require.NoError(t, other.Unlock())
	require.NoError(t, lock.Unlock())
}
