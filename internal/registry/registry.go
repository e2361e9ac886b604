// Package registry is the single source of truth for per-device state.
// Access from the broker callback, the health monitor, and connection
// lifecycle handlers is serialized by a mutex; callers always receive
// copies, never pointers into the map.
package registry

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmas/supervisor-core/internal/constants"
	"github.com/jmas/supervisor-core/internal/models"
)

// Registry maps tablet ids to their current state. Devices are created
// on first location report and never removed; a device that stops
// reporting goes stale and is flagged by the health monitor instead.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*models.Device
	logger  zerolog.Logger
}

// New creates an empty Registry.
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		devices: make(map[string]*models.Device),
		logger:  logger,
	}
}

// UpsertFromLocation applies a location report, creating the device on
// first sighting. A reporting device is by definition online with GPS
// enabled. LastUpdate is the processing time, so it never regresses on
// late-arriving messages.
func (r *Registry) UpsertFromLocation(report models.LocationReport, now time.Time) models.Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[report.TabletID]
	if !ok {
		nd := models.NewDevice(report.TabletID)
		d = &nd
		r.devices[report.TabletID] = d
		r.logger.Info().Str("tablet_id", report.TabletID).Msg("Tracking new device")
	}

	d.Latitude = report.Latitude
	d.Longitude = report.Longitude
	d.LastUpdate = now
	d.GPSEnabled = true
	d.Online = true
	d.Refresh()

	return *d
}

// ApplyAlert applies an inbound alert to the referenced device. An
// alert for a device never seen via location is a no-op; it must not
// create a phantom entry.
func (r *Registry) ApplyAlert(report models.AlertReport) (models.Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[report.TabletID]
	if !ok {
		r.logger.Debug().Str("tablet_id", report.TabletID).Str("type", report.Type).
			Msg("Alert references unknown device, ignoring")
		return models.Device{}, false
	}

	switch report.Type {
	case constants.AlertTypeGPSDisabled:
		d.GPSEnabled = false
	case constants.AlertTypeBatteryLow:
		d.Tag = models.TagBatteryLow
	}
	d.Refresh()

	return *d, true
}

// MarkOffline declares a device unreachable. Used by the health monitor
// when a device exceeds the report timeout.
func (r *Registry) MarkOffline(id string) (models.Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return models.Device{}, false
	}

	d.Online = false
	d.Refresh()

	return *d, true
}

// SetAddress stores the reverse-geocoded label for a device. The label
// is opaque cached text owned by the geocoding collaborator.
func (r *Registry) SetAddress(id, address string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		return false
	}

	d.Address = address
	return true
}

// Get returns a copy of the device with the given id.
func (r *Registry) Get(id string) (models.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return models.Device{}, false
	}
	return *d, true
}

// Snapshot returns a read-only copy of every known device.
func (r *Registry) Snapshot() []models.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, *d)
	}
	return out
}

// Len returns the number of tracked devices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
