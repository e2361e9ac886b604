package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeLocation_Valid tests decoding of a well-formed location payload.
func TestDecodeLocation_Valid(t *testing.T) {
	payload := []byte(`{"tabletId":"T1","lat":31.0,"lon":-106.0}`)

	report, err := DecodeLocation(payload)

	require.NoError(t, err)
	assert.Equal(t, "T1", report.TabletID)
	assert.Equal(t, 31.0, report.Latitude)
	assert.Equal(t, -106.0, report.Longitude)
}

// TestDecodeLocation_IgnoresUnknownFields tests that extra keys do not break decoding.
func TestDecodeLocation_IgnoresUnknownFields(t *testing.T) {
	payload := []byte(`{"tabletId":"T1","lat":1.5,"lon":2.5,"battery":87}`)

	report, err := DecodeLocation(payload)

	require.NoError(t, err)
	assert.Equal(t, "T1", report.TabletID)
}

// TestDecodeLocation_Malformed tests the decode error cases for location payloads.
func TestDecodeLocation_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `tablet7;31.0;-106.0`},
		{"missing tabletId", `{"lat":31.0,"lon":-106.0}`},
		{"empty tabletId", `{"tabletId":"","lat":31.0,"lon":-106.0}`},
		{"missing lat", `{"tabletId":"T1","lon":-106.0}`},
		{"missing lon", `{"tabletId":"T1","lat":31.0}`},
		{"wrong lat type", `{"tabletId":"T1","lat":"north","lon":-106.0}`},
		{"wrong tabletId type", `{"tabletId":12,"lat":31.0,"lon":-106.0}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLocation([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

// TestDecodeAlert_Valid tests decoding of a well-formed alert payload.
func TestDecodeAlert_Valid(t *testing.T) {
	payload := []byte(`{"tabletId":"T2","message":"GPS turned off","timestamp":1735689600000,"type":"gps_disabled"}`)

	alert, err := DecodeAlert(payload)

	require.NoError(t, err)
	assert.Equal(t, "T2", alert.TabletID)
	assert.Equal(t, "GPS turned off", alert.Message)
	assert.Equal(t, "gps_disabled", alert.Type)
	assert.Equal(t, time.UnixMilli(1735689600000), alert.Timestamp)
	assert.False(t, alert.Resolved)
}

// TestDecodeAlert_OpaqueType tests that operator-defined alert types pass through.
func TestDecodeAlert_OpaqueType(t *testing.T) {
	payload := []byte(`{"tabletId":"T2","message":"custom","timestamp":1,"type":"door_open"}`)

	alert, err := DecodeAlert(payload)

	require.NoError(t, err)
	assert.Equal(t, "door_open", alert.Type)
}

// TestDecodeAlert_Malformed tests the decode error cases for alert payloads.
func TestDecodeAlert_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"missing tabletId", `{"message":"m","timestamp":1,"type":"t"}`},
		{"missing message", `{"tabletId":"T1","timestamp":1,"type":"t"}`},
		{"missing timestamp", `{"tabletId":"T1","message":"m","type":"t"}`},
		{"missing type", `{"tabletId":"T1","message":"m","timestamp":1}`},
		{"wrong timestamp type", `{"tabletId":"T1","message":"m","timestamp":"now","type":"t"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAlert([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}
