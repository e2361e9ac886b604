package models

import (
	"time"

	"github.com/jmas/supervisor-core/internal/constants"
)

// AlertTag classifies the standing alert condition of a device.
type AlertTag string

const (
	TagNone       AlertTag = "none"
	TagGPSOff     AlertTag = "gps_off"
	TagOffline    AlertTag = "offline"
	TagBatteryLow AlertTag = "battery_low"
	TagOther      AlertTag = "other"
)

// Device represents the last known state of one tracked tablet.
type Device struct {
	ID         string    `json:"tablet_id"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	LastUpdate time.Time `json:"last_update"`
	GPSEnabled bool      `json:"gps_enabled"`
	Online     bool      `json:"online"`
	Status     string    `json:"status"`
	Address    string    `json:"address"`
	Tag        AlertTag  `json:"alert_tag"`
}

// NewDevice returns a Device in its first-sighting state: GPS on,
// online, no standing alert.
func NewDevice(id string) Device {
	return Device{
		ID:         id,
		GPSEnabled: true,
		Online:     true,
		Status:     constants.StatusActive,
		Tag:        TagNone,
	}
}

// Refresh recomputes the derived status string and alert tag from the
// device's flags. Called after every registry mutation so the display
// state can never drift from the underlying fields.
func (d *Device) Refresh() {
	switch {
	case !d.Online:
		d.Status = constants.StatusOffline
		d.Tag = TagOffline
	case !d.GPSEnabled:
		d.Status = constants.StatusGPSDisabled
		d.Tag = TagGPSOff
	case d.Tag == TagBatteryLow:
		d.Status = constants.StatusBatteryLow
	default:
		d.Status = constants.StatusActive
		d.Tag = TagNone
	}
}
