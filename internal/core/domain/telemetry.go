package domain

import (
	"encoding/json"
	"strconv"
)

// TelemetryRecord is one fleet message as stored in the history file. Sensor
// payloads the service never inspects are kept as raw JSON and passed through
// untouched.
type TelemetryRecord struct {
	MessageID      string          `json:"messageId"`
	PositionStatus PositionStatus  `json:"positionStatus"`
	AssetStatus    json.RawMessage `json:"assetStatus,omitempty"`
	ReeferStatus   json.RawMessage `json:"reeferStatus,omitempty"`
	ImpactStatus   json.RawMessage `json:"impactStatus,omitempty"`
	GenericSensors json.RawMessage `json:"genericSensors,omitempty"`
}

// PositionStatus is the geolocation block of a telemetry record.
type PositionStatus struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Street      string  `json:"street"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	FullAddress string  `json:"fullAddress,omitempty"`
}

// Field looks up a matchable address attribute by its wire name. Attributes
// outside the matchable set report ok=false.
func (ps PositionStatus) Field(name string) (string, bool) {
	switch name {
	case "street":
		return ps.Street, true
	case "city":
		return ps.City, true
	case "state":
		return ps.State, true
	default:
		return "", false
	}
}

// Point returns the record's location in internal latitude-first form.
func (ps PositionStatus) Point() GeoPoint {
	return GeoPoint{Lat: ps.Latitude, Lon: ps.Longitude}
}

// SequenceID parses messageId as the record's chronological sequence number.
// Records with a non-numeric id report ok=false and sort as sequence 0.
func (r TelemetryRecord) SequenceID() (int64, bool) {
	n, err := strconv.ParseInt(r.MessageID, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
