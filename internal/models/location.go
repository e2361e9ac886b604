package models

// LocationReport is the transient decode result of a tablet/location
// message. It is consumed once to update the registry and not retained.
type LocationReport struct {
	TabletID  string  `json:"tablet_id"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
