package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Store]")
	assert.Contains(t, out, "SQLite (persistent)")
	assert.Contains(t, out, "Max items:      50")
	assert.Contains(t, out, "Max size:       5.0 MiB")
	assert.Contains(t, out, "Labels:         on")
}

func TestSettingsCmd_ShowJSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "show", "--json")
	require.NoError(t, err)

	var s domain.AppSettings
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, domain.DefaultAppSettings(), s)
}

func TestSettingsCmd_SetAndReset(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "set", "store.max_items", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Set store.max_items = 10")
	assert.Equal(t, 10, currentSettings().Store.MaxItems)

	_, err = execute(t, "", "settings", "set", "display.show_labels", "false")
	require.NoError(t, err)
	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Labels:         off")

	_, err = execute(t, "", "settings", "reset")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), currentSettings())
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "settings", "set", "store.max_items", "many")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "", "settings", "set", "no.such_key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "store.max_items")
	assert.Contains(t, out, "watch.rate_per_second")
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}
