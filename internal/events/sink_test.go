package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmas/supervisor-core/internal/models"
)

// TestSink_NilSlots tests that unset slots and a nil sink are safe to invoke.
func TestSink_NilSlots(t *testing.T) {
	s := &Sink{}
	s.LocationUpdated(models.Device{})
	s.AlertReceived(models.AlertReport{})
	s.ConnectionChanged(true)

	var nilSink *Sink
	nilSink.LocationUpdated(models.Device{})
	nilSink.AlertReceived(models.AlertReport{})
	nilSink.ConnectionChanged(false)
}

// TestSink_Dispatch tests that set slots receive the event values.
func TestSink_Dispatch(t *testing.T) {
	var gotDevice models.Device
	var gotAlert models.AlertReport
	var gotConnected bool

	s := &Sink{
		OnLocationUpdate:    func(d models.Device) { gotDevice = d },
		OnAlertReceived:     func(a models.AlertReport) { gotAlert = a },
		OnConnectionChanged: func(c bool) { gotConnected = c },
	}

	s.LocationUpdated(models.Device{ID: "T1"})
	s.AlertReceived(models.AlertReport{TabletID: "T1", Type: "stationary"})
	s.ConnectionChanged(true)

	assert.Equal(t, "T1", gotDevice.ID)
	assert.Equal(t, "stationary", gotAlert.Type)
	assert.True(t, gotConnected)
}
