// Package events defines the callback surface between the monitoring
// core and the presentation layer built on top of it.
package events

import "github.com/jmas/supervisor-core/internal/models"

// Sink is the set of callbacks the presentation layer implements. Each
// slot is independently optional. The core invokes slots synchronously
// from its dispatch point and never waits on a consumer, so slow sink
// implementations should hand off to their own goroutines.
type Sink struct {
	OnLocationUpdate    func(device models.Device)
	OnAlertReceived     func(alert models.AlertReport)
	OnConnectionChanged func(connected bool)
}

// LocationUpdated invokes OnLocationUpdate if set.
func (s *Sink) LocationUpdated(device models.Device) {
	if s != nil && s.OnLocationUpdate != nil {
		s.OnLocationUpdate(device)
	}
}

// AlertReceived invokes OnAlertReceived if set. Broker-originated and
// synthetic alerts both flow through here.
func (s *Sink) AlertReceived(alert models.AlertReport) {
	if s != nil && s.OnAlertReceived != nil {
		s.OnAlertReceived(alert)
	}
}

// ConnectionChanged invokes OnConnectionChanged if set.
func (s *Sink) ConnectionChanged(connected bool) {
	if s != nil && s.OnConnectionChanged != nil {
		s.OnConnectionChanged(connected)
	}
}
