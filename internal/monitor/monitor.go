// Package monitor periodically scans the device registry and raises
// synthetic alerts for devices that went silent or stopped moving.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmas/supervisor-core/internal/constants"
	"github.com/jmas/supervisor-core/internal/events"
	"github.com/jmas/supervisor-core/internal/models"
	"github.com/jmas/supervisor-core/internal/registry"
	"github.com/jmas/supervisor-core/pkg/geo"
)

// locationSnapshot anchors the last position at which a device was
// confirmed to have moved past the movement threshold. Its timestamp
// only advances on movement, so stationary time accumulates from it.
type locationSnapshot struct {
	lat, lon float64
	taken    time.Time
}

// Monitor runs the timeout and stationary checks on a fixed interval.
// Both checks are level-triggered: they re-fire every pass while the
// condition holds, and deduplication is left to the sink.
type Monitor struct {
	// Configuration fields
	interval          time.Duration
	timeout           time.Duration
	stationaryAfter   time.Duration
	movementThreshold float64

	// Dependencies
	registry *registry.Registry
	sink     *events.Sink
	logger   zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time

	// snapshots is touched only by the check loop.
	snapshots map[string]locationSnapshot

	// Internal state management. Start and Stop arrive from different
	// goroutines, so the lifecycle fields are guarded by a mutex.
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a Monitor with the provided thresholds.
func New(interval, timeout, stationaryAfter time.Duration, movementThreshold float64,
	reg *registry.Registry, sink *events.Sink, logger zerolog.Logger) *Monitor {
	return &Monitor{
		interval:          interval,
		timeout:           timeout,
		stationaryAfter:   stationaryAfter,
		movementThreshold: movementThreshold,
		registry:          reg,
		sink:              sink,
		logger:            logger,
		now:               time.Now,
		snapshots:         make(map[string]locationSnapshot),
	}
}

// Start launches the periodic check loop in a separate goroutine.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		m.logger.Warn().Msg("HealthMonitor is already running")
		return errors.New("health monitor is already running")
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.running = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.runChecks()
			case <-m.ctx.Done():
				m.logger.Info().Msg("HealthMonitor is stopping")
				return
			}
		}
	}()

	m.logger.Info().
		Dur("interval", m.interval).
		Dur("timeout", m.timeout).
		Dur("stationary_after", m.stationaryAfter).
		Msg("HealthMonitor started")
	return nil
}

// Stop terminates the check loop and waits for it to exit. The mutex
// is held across the wait; the check loop never takes it, so this
// cannot deadlock and serializes Stop against a concurrent Start.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		m.logger.Warn().Msg("HealthMonitor is not running")
		return errors.New("health monitor is not running")
	}

	m.cancel()
	m.wg.Wait()
	m.running = false

	m.logger.Info().Msg("HealthMonitor stopped")
	return nil
}

// runChecks performs one pass over every known device. A single
// device's checks never abort the pass for the others.
func (m *Monitor) runChecks() {
	now := m.now()
	for _, device := range m.registry.Snapshot() {
		m.checkTimeout(device, now)
		m.checkStationary(device, now)
	}
}

// checkTimeout raises gps_timeout and declares the device unreachable
// when it has not reported within the allowed window.
func (m *Monitor) checkTimeout(device models.Device, now time.Time) {
	if now.Sub(device.LastUpdate) <= m.timeout {
		return
	}

	m.registry.MarkOffline(device.ID)
	m.emit(models.AlertReport{
		TabletID:  device.ID,
		Message:   fmt.Sprintf("No GPS signal for more than %s", m.timeout),
		Timestamp: now,
		Type:      constants.AlertTypeGPSTimeout,
	})
}

// checkStationary raises stationary when the device has stayed within
// the movement threshold of its snapshot for too long. Movement past
// the threshold resets the snapshot and with it the stationary clock.
func (m *Monitor) checkStationary(device models.Device, now time.Time) {
	snap, ok := m.snapshots[device.ID]
	if !ok {
		m.snapshots[device.ID] = locationSnapshot{
			lat:   device.Latitude,
			lon:   device.Longitude,
			taken: device.LastUpdate,
		}
		return
	}

	displacement := geo.DistanceMeters(snap.lat, snap.lon, device.Latitude, device.Longitude)
	if displacement >= m.movementThreshold {
		m.snapshots[device.ID] = locationSnapshot{
			lat:   device.Latitude,
			lon:   device.Longitude,
			taken: now,
		}
		return
	}

	if now.Sub(snap.taken) > m.stationaryAfter {
		m.emit(models.AlertReport{
			TabletID:  device.ID,
			Message:   fmt.Sprintf("Device stationary in the same location for more than %s", m.stationaryAfter),
			Timestamp: now,
			Type:      constants.AlertTypeStationary,
		})
	}
}

func (m *Monitor) emit(alert models.AlertReport) {
	m.logger.Warn().
		Str("tablet_id", alert.TabletID).
		Str("type", alert.Type).
		Msg("Synthetic alert raised")
	m.sink.AlertReceived(alert)
}
