package protocol

import (
	"encoding/json"
	"math"
)

// JSONFloat is a float32 that also encodes NaN and the infinities, as the
// strings "NaN", "+Inf" and "-Inf". Vehicles can send any bit pattern in
// an offset field.
type JSONFloat float32

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(float32(f))
}

func (m *SetOffsetFromRoadCentre) MarshalJSON() ([]byte, error) {
	type plain SetOffsetFromRoadCentre
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}

func (m *ChangeLane) MarshalJSON() ([]byte, error) {
	type plain ChangeLane
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}

func (m *PositionUpdate) MarshalJSON() ([]byte, error) {
	type plain PositionUpdate
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}

func (m *TransitionUpdate) MarshalJSON() ([]byte, error) {
	type plain TransitionUpdate
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}

func (m *IntersectionUpdate) MarshalJSON() ([]byte, error) {
	type plain IntersectionUpdate
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}

func (m *OffsetFromRoadCentreUpdate) MarshalJSON() ([]byte, error) {
	type plain OffsetFromRoadCentreUpdate
	return json.Marshal(struct {
		plain
		Offset JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(*m), JSONFloat(m.Offset)})
}
