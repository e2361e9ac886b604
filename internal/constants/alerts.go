package constants

// Alert types published by the tablets, plus the synthetic types raised
// by the health monitor. Any other value is operator-defined and passed
// through opaquely.
const (
	// AlertTypeGPSDisabled indicates the tablet reported its GPS turned off
	AlertTypeGPSDisabled = "gps_disabled"
	// AlertTypeGPSTimeout indicates no location report within the allowed window (synthetic)
	AlertTypeGPSTimeout = "gps_timeout"
	// AlertTypeStationary indicates the tablet has not moved past the movement threshold (synthetic)
	AlertTypeStationary = "stationary"
	// AlertTypeBatteryLow indicates the tablet reported a low battery level
	AlertTypeBatteryLow = "battery_low"
)

// Derived device status summaries
const (
	// StatusActive indicates the device is reporting normally
	StatusActive = "Active"
	// StatusGPSDisabled indicates the device has its GPS turned off
	StatusGPSDisabled = "GPS disabled"
	// StatusOffline indicates the device stopped reporting and was declared unreachable
	StatusOffline = "Offline"
	// StatusBatteryLow indicates the device reported a low battery level
	StatusBatteryLow = "Battery low"
)
