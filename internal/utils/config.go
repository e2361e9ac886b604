package utils

import (
	"fmt"

	"github.com/jmas/supervisor-core/pkg/file"
)

// MQTTConfig holds the broker session parameters.
type MQTTConfig struct {
	Broker         string `yaml:"broker"`          // MQTT broker address
	ClientID       string `yaml:"client_id"`       // Client ID prefix; a UUID is appended per connection attempt
	QOS            int    `yaml:"qos"`             // MQTT QoS level for subscriptions
	CleanSession   bool   `yaml:"clean_session"`   // MQTT clean-session flag
	ConnectTimeout int    `yaml:"connect_timeout"` // Timeout for the broker handshake (in seconds)
	RetryDelay     int    `yaml:"retry_delay"`     // Fixed delay before a reconnect attempt (in seconds)
	LocationTopic  string `yaml:"location_topic"`  // Topic carrying tablet location reports
	AlertTopic     string `yaml:"alert_topic"`     // Topic carrying tablet alerts
}

// MonitorConfig holds the health-check thresholds.
type MonitorConfig struct {
	Interval           int     `yaml:"interval"`             // Time between health-check passes (in seconds)
	Timeout            int     `yaml:"timeout"`              // Silence beyond this raises gps_timeout (in seconds)
	StationaryAfter    int     `yaml:"stationary_after"`     // Near-zero movement beyond this raises stationary (in seconds)
	MovementThresholdM float64 `yaml:"movement_threshold_m"` // Displacement in meters counted as movement
}

// GeocodeConfig holds the reverse-geocoding collaborator settings.
type GeocodeConfig struct {
	Enabled        bool   `yaml:"enabled"`         // Enable/disable address resolution
	MapsAPIKey     string `yaml:"maps_api_key"`    // Google Maps API key
	Workers        int    `yaml:"workers"`         // Worker pool size for lookups
	RequestTimeout int    `yaml:"request_timeout"` // Timeout per geocoding request (in seconds)
}

// Config represents the structure of the configuration file.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Monitor MonitorConfig `yaml:"monitor"`
	Geocode GeocodeConfig `yaml:"geocode"`
}

// Reference-behavior defaults, applied for any field the file leaves unset.
const (
	DefaultBroker                = "tcp://broker.emqx.io:1883"
	DefaultClientIDPrefix        = "supervisor"
	DefaultQOS                   = 1
	DefaultConnectTimeoutSeconds = 10
	DefaultRetryDelaySeconds     = 5
	DefaultLocationTopic         = "tablet/location"
	DefaultAlertTopic            = "tablet/alert"

	DefaultMonitorIntervalSeconds = 30
	DefaultTimeoutSeconds         = 120
	DefaultStationarySeconds      = 900
	DefaultMovementThresholdM     = 5.0

	DefaultGeocodeWorkers        = 2
	DefaultGeocodeTimeoutSeconds = 10
)

// LoadConfig loads the YAML configuration from the specified file and
// fills in defaults for anything left unset.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	exists, err := fileClient.IsFileExists(filename)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("config file %s does not exist", filename)
	}

	var config Config
	if err := fileClient.ReadYamlFile(filename, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.MQTT.Broker == "" {
		c.MQTT.Broker = DefaultBroker
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = DefaultClientIDPrefix
	}
	if c.MQTT.QOS == 0 {
		c.MQTT.QOS = DefaultQOS
	}
	if c.MQTT.ConnectTimeout == 0 {
		c.MQTT.ConnectTimeout = DefaultConnectTimeoutSeconds
	}
	if c.MQTT.RetryDelay == 0 {
		c.MQTT.RetryDelay = DefaultRetryDelaySeconds
	}
	if c.MQTT.LocationTopic == "" {
		c.MQTT.LocationTopic = DefaultLocationTopic
	}
	if c.MQTT.AlertTopic == "" {
		c.MQTT.AlertTopic = DefaultAlertTopic
	}

	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = DefaultMonitorIntervalSeconds
	}
	if c.Monitor.Timeout == 0 {
		c.Monitor.Timeout = DefaultTimeoutSeconds
	}
	if c.Monitor.StationaryAfter == 0 {
		c.Monitor.StationaryAfter = DefaultStationarySeconds
	}
	if c.Monitor.MovementThresholdM == 0 {
		c.Monitor.MovementThresholdM = DefaultMovementThresholdM
	}

	if c.Geocode.Workers == 0 {
		c.Geocode.Workers = DefaultGeocodeWorkers
	}
	if c.Geocode.RequestTimeout == 0 {
		c.Geocode.RequestTimeout = DefaultGeocodeTimeoutSeconds
	}
}
