package protocol

import (
	"fmt"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// Telemetry the vehicle sends while driving. Offsets are millimetres from
// the road centre, speeds mm/s.

// PositionUpdate (0x27) is sent each time the vehicle reads a location code.
type PositionUpdate struct {
	Header
	LocationID                 uint8        `json:"location_id"`
	RoadPieceID                uint8        `json:"road_piece_id"`
	Offset                     float32      `json:"offset_from_road_centre_mm"`
	Speed                      uint16       `json:"speed_mm_per_sec"`
	ParsingFlags               ParsingFlags `json:"parsing_flags"`
	LastRecvLaneChangeCmdID    uint8        `json:"last_recv_lane_change_cmd_id"`
	LastExecLaneChangeCmdID    uint8        `json:"last_exec_lane_change_cmd_id"`
	LastDesiredLaneChangeSpeed uint16       `json:"last_desired_lane_change_speed_mm_per_sec"`
	LastDesiredSpeed           uint16       `json:"last_desired_speed_mm_per_sec"`
}

func (m *PositionUpdate) Len() int { return SizePositionUpdate }

func (m *PositionUpdate) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "PositionUpdate", len(src), SizePositionUpdate); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.LocationID = r.U8()
	m.RoadPieceID = r.U8()
	m.Offset = r.F32()
	m.Speed = r.U16()
	m.ParsingFlags = ParsingFlags(r.U8())
	m.LastRecvLaneChangeCmdID = r.U8()
	m.LastExecLaneChangeCmdID = r.U8()
	m.LastDesiredLaneChangeSpeed = r.U16()
	m.LastDesiredSpeed = r.U16()
	return r.Err()
}

func (m *PositionUpdate) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "PositionUpdate", len(dst), SizePositionUpdate); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutU8(m.LocationID)
	w.PutU8(m.RoadPieceID)
	w.PutF32(m.Offset)
	w.PutU16(m.Speed)
	w.PutU8(uint8(m.ParsingFlags))
	w.PutU8(m.LastRecvLaneChangeCmdID)
	w.PutU8(m.LastExecLaneChangeCmdID)
	w.PutU16(m.LastDesiredLaneChangeSpeed)
	w.PutU16(m.LastDesiredSpeed)
	return w.Err()
}

func (m *PositionUpdate) String() string {
	return fmt.Sprintf("PositionUpdate{location=%d, piece=%d, offset=%.2fmm, speed=%d, flags=%s}",
		m.LocationID, m.RoadPieceID, m.Offset, m.Speed, m.ParsingFlags)
}

// TransitionUpdate (0x29) is sent when the vehicle moves onto a new road
// piece.
type TransitionUpdate struct {
	Header
	RoadPieceIdx               int8    `json:"road_piece_idx"`
	RoadPieceIdxPrev           int8    `json:"road_piece_idx_prev"`
	Offset                     float32 `json:"offset_from_road_centre_mm"`
	LastRecvLaneChangeID       uint8   `json:"last_recv_lane_change_id"`
	LastExecLaneChangeID       uint8   `json:"last_exec_lane_change_id"`
	LastDesiredLaneChangeSpeed uint16  `json:"last_desired_lane_change_speed_mm_per_sec"`
	AveFollowLineDriftPixels   int8    `json:"ave_follow_line_drift_pixels"`
	HadLaneChangeActivity      uint8   `json:"had_lane_change_activity"`
	UphillCounter              uint8   `json:"uphill_counter"`
	DownhillCounter            uint8   `json:"downhill_counter"`
	LeftWheelDistCm            uint8   `json:"left_wheel_dist_cm"`
	RightWheelDistCm           uint8   `json:"right_wheel_dist_cm"`
}

func (m *TransitionUpdate) Len() int { return SizeTransitionUpdate }

func (m *TransitionUpdate) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "TransitionUpdate", len(src), SizeTransitionUpdate); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.RoadPieceIdx = r.I8()
	m.RoadPieceIdxPrev = r.I8()
	m.Offset = r.F32()
	m.LastRecvLaneChangeID = r.U8()
	m.LastExecLaneChangeID = r.U8()
	m.LastDesiredLaneChangeSpeed = r.U16()
	m.AveFollowLineDriftPixels = r.I8()
	m.HadLaneChangeActivity = r.U8()
	m.UphillCounter = r.U8()
	m.DownhillCounter = r.U8()
	m.LeftWheelDistCm = r.U8()
	m.RightWheelDistCm = r.U8()
	return r.Err()
}

func (m *TransitionUpdate) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "TransitionUpdate", len(dst), SizeTransitionUpdate); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutI8(m.RoadPieceIdx)
	w.PutI8(m.RoadPieceIdxPrev)
	w.PutF32(m.Offset)
	w.PutU8(m.LastRecvLaneChangeID)
	w.PutU8(m.LastExecLaneChangeID)
	w.PutU16(m.LastDesiredLaneChangeSpeed)
	w.PutI8(m.AveFollowLineDriftPixels)
	w.PutU8(m.HadLaneChangeActivity)
	w.PutU8(m.UphillCounter)
	w.PutU8(m.DownhillCounter)
	w.PutU8(m.LeftWheelDistCm)
	w.PutU8(m.RightWheelDistCm)
	return w.Err()
}

func (m *TransitionUpdate) String() string {
	return fmt.Sprintf("TransitionUpdate{piece=%d, prev=%d, offset=%.2fmm, uphill=%d, downhill=%d, wheels=%d/%dcm}",
		m.RoadPieceIdx, m.RoadPieceIdxPrev, m.Offset, m.UphillCounter, m.DownhillCounter,
		m.LeftWheelDistCm, m.RightWheelDistCm)
}

// IntersectionUpdate (0x2a) is sent when the vehicle crosses an
// intersection marker.
type IntersectionUpdate struct {
	Header
	RoadPieceIdx                int8             `json:"road_piece_idx"`
	Offset                      float32          `json:"offset_from_road_centre_mm"`
	Code                        IntersectionCode `json:"intersection_code"`
	IsExiting                   uint8            `json:"is_exiting"`
	MmSinceLastTransitionBar    uint16           `json:"mm_since_last_transition_bar"`
	MmSinceLastIntersectionCode uint16           `json:"mm_since_last_intersection_code"`
}

func (m *IntersectionUpdate) Len() int { return SizeIntersectionUpdate }

func (m *IntersectionUpdate) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "IntersectionUpdate", len(src), SizeIntersectionUpdate); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.RoadPieceIdx = r.I8()
	m.Offset = r.F32()
	m.Code = IntersectionCodeFromByte(r.U8())
	m.IsExiting = r.U8()
	m.MmSinceLastTransitionBar = r.U16()
	m.MmSinceLastIntersectionCode = r.U16()
	return r.Err()
}

func (m *IntersectionUpdate) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "IntersectionUpdate", len(dst), SizeIntersectionUpdate); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutI8(m.RoadPieceIdx)
	w.PutF32(m.Offset)
	w.PutU8(m.Code.Byte())
	w.PutU8(m.IsExiting)
	w.PutU16(m.MmSinceLastTransitionBar)
	w.PutU16(m.MmSinceLastIntersectionCode)
	return w.Err()
}

func (m *IntersectionUpdate) String() string {
	return fmt.Sprintf("IntersectionUpdate{piece=%d, offset=%.2fmm, code=%s, exiting=%d}",
		m.RoadPieceIdx, m.Offset, m.Code, m.IsExiting)
}

// OffsetFromRoadCentreUpdate (0x2d) is sent after a lane change settles.
type OffsetFromRoadCentreUpdate struct {
	Header
	Offset       float32 `json:"offset_from_road_centre_mm"`
	LaneChangeID uint8   `json:"lane_change_id"`
}

func (m *OffsetFromRoadCentreUpdate) Len() int { return SizeOffsetFromRoadCentreUpdate }

func (m *OffsetFromRoadCentreUpdate) DecodeFrom(src []byte, e wire.Endian) error {
	if err := wire.CheckExact("decode", "OffsetFromRoadCentreUpdate", len(src), SizeOffsetFromRoadCentreUpdate); err != nil {
		return err
	}
	r := wire.NewReader(src, e)
	m.read(r)
	m.Offset = r.F32()
	m.LaneChangeID = r.U8()
	return r.Err()
}

func (m *OffsetFromRoadCentreUpdate) EncodeTo(dst []byte, e wire.Endian) error {
	if err := wire.CheckExact("encode", "OffsetFromRoadCentreUpdate", len(dst), SizeOffsetFromRoadCentreUpdate); err != nil {
		return err
	}
	w := wire.NewWriter(dst, e)
	m.write(w)
	w.PutF32(m.Offset)
	w.PutU8(m.LaneChangeID)
	return w.Err()
}

func (m *OffsetFromRoadCentreUpdate) String() string {
	return fmt.Sprintf("OffsetFromRoadCentreUpdate{offset=%.2fmm, lane_change_id=%d}", m.Offset, m.LaneChangeID)
}
