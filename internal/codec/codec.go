// Package codec decodes raw broker payloads into typed reports. It is
// the single structured decode path for both inbound topics; decoding
// is pure and never touches the device registry.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmas/supervisor-core/internal/models"
)

// Wire forms of the two tablet payloads. Fields are pointers so a
// missing key can be told apart from a zero value.
type locationPayload struct {
	TabletID *string  `json:"tabletId"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

type alertPayload struct {
	TabletID  *string `json:"tabletId"`
	Message   *string `json:"message"`
	Timestamp *int64  `json:"timestamp"`
	Type      *string `json:"type"`
}

// DecodeLocation parses a tablet/location payload into a LocationReport.
// Malformed JSON, a missing field, or a wrong-typed field yields an
// error; the caller logs and drops the message.
func DecodeLocation(payload []byte) (models.LocationReport, error) {
	var p locationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return models.LocationReport{}, fmt.Errorf("malformed location payload: %w", err)
	}

	if p.TabletID == nil || *p.TabletID == "" {
		return models.LocationReport{}, fmt.Errorf("location payload missing tabletId")
	}
	if p.Lat == nil || p.Lon == nil {
		return models.LocationReport{}, fmt.Errorf("location payload for %q missing coordinates", *p.TabletID)
	}

	return models.LocationReport{
		TabletID:  *p.TabletID,
		Latitude:  *p.Lat,
		Longitude: *p.Lon,
	}, nil
}

// DecodeAlert parses a tablet/alert payload into an AlertReport. The
// wire timestamp is milliseconds since the Unix epoch.
func DecodeAlert(payload []byte) (models.AlertReport, error) {
	var p alertPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return models.AlertReport{}, fmt.Errorf("malformed alert payload: %w", err)
	}

	if p.TabletID == nil || *p.TabletID == "" {
		return models.AlertReport{}, fmt.Errorf("alert payload missing tabletId")
	}
	if p.Message == nil {
		return models.AlertReport{}, fmt.Errorf("alert payload for %q missing message", *p.TabletID)
	}
	if p.Timestamp == nil {
		return models.AlertReport{}, fmt.Errorf("alert payload for %q missing timestamp", *p.TabletID)
	}
	if p.Type == nil || *p.Type == "" {
		return models.AlertReport{}, fmt.Errorf("alert payload for %q missing type", *p.TabletID)
	}

	return models.AlertReport{
		TabletID:  *p.TabletID,
		Message:   *p.Message,
		Timestamp: time.UnixMilli(*p.Timestamp),
		Type:      *p.Type,
	}, nil
}
