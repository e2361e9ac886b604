package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmas/supervisor-core/pkg/file"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

// TestLoadConfig_Defaults tests that an empty file yields the full set
// of reference-behavior defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "mqtt: {}\n")

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, DefaultBroker, config.MQTT.Broker)
	assert.Equal(t, DefaultClientIDPrefix, config.MQTT.ClientID)
	assert.Equal(t, DefaultQOS, config.MQTT.QOS)
	assert.False(t, config.MQTT.CleanSession)
	assert.Equal(t, DefaultRetryDelaySeconds, config.MQTT.RetryDelay)
	assert.Equal(t, DefaultLocationTopic, config.MQTT.LocationTopic)
	assert.Equal(t, DefaultAlertTopic, config.MQTT.AlertTopic)
	assert.Equal(t, DefaultMonitorIntervalSeconds, config.Monitor.Interval)
	assert.Equal(t, DefaultTimeoutSeconds, config.Monitor.Timeout)
	assert.Equal(t, DefaultStationarySeconds, config.Monitor.StationaryAfter)
	assert.Equal(t, DefaultMovementThresholdM, config.Monitor.MovementThresholdM)
	assert.Equal(t, DefaultGeocodeWorkers, config.Geocode.Workers)
}

// TestLoadConfig_Overrides tests that file values win over defaults.
func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker: "tcp://mqtt.example.com:8883"
  client_id: "ops-console"
  retry_delay: 15
monitor:
  timeout: 300
  movement_threshold_m: 10
geocode:
  enabled: true
  maps_api_key: "key"
`)

	config, err := LoadConfig(path, file.NewFileService())

	require.NoError(t, err)
	assert.Equal(t, "tcp://mqtt.example.com:8883", config.MQTT.Broker)
	assert.Equal(t, "ops-console", config.MQTT.ClientID)
	assert.Equal(t, 15, config.MQTT.RetryDelay)
	assert.Equal(t, 300, config.Monitor.Timeout)
	assert.Equal(t, 10.0, config.Monitor.MovementThresholdM)
	assert.True(t, config.Geocode.Enabled)
	assert.Equal(t, DefaultMonitorIntervalSeconds, config.Monitor.Interval)
}

// TestLoadConfig_MissingFile tests that a nonexistent path reports a
// usable error naming the file.
func TestLoadConfig_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := LoadConfig(path, file.NewFileService())

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "does not exist")
}
