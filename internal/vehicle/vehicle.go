package vehicle

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/overdrivekit/overdrive/internal/advertisement"
	"github.com/overdrivekit/overdrive/internal/logging"
	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/wire"
)

// Lane reset defaults sent by Configure.
const (
	DefaultLaneResetSpeed uint16 = 300
	DefaultLaneResetAccel uint16 = 2500
)

// State is a point-in-time copy of everything known about a vehicle.
type State struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Version   uint16 `json:"version"`
	Battery   uint16 `json:"battery_level"`
	SDKModeOn bool   `json:"sdk_mode_on"`

	Speed        uint16                `json:"speed_mm_per_sec"`
	Offset       float32               `json:"offset_from_road_centre_mm"`
	LocationID   uint8                 `json:"location_id"`
	ParsingFlags protocol.ParsingFlags `json:"parsing_flags"`

	LastDesiredSpeed           uint16 `json:"last_desired_speed_mm_per_sec"`
	LastDesiredLaneChangeSpeed uint16 `json:"last_desired_lane_change_speed_mm_per_sec"`

	RoadPieceIdx     int8  `json:"road_piece_idx"`
	RoadPieceIdxPrev int8  `json:"road_piece_idx_prev"`
	UphillCounter    uint8 `json:"uphill_counter"`
	DownhillCounter  uint8 `json:"downhill_counter"`
	LeftWheelDistCm  uint8 `json:"left_wheel_dist_cm"`
	RightWheelDistCm uint8 `json:"right_wheel_dist_cm"`

	IntersectionCode            protocol.IntersectionCode `json:"intersection_code"`
	IsExitingIntersection       uint8                     `json:"is_exiting_intersection"`
	MmSinceLastTransitionBar    uint16                    `json:"mm_since_last_transition_bar"`
	MmSinceLastIntersectionCode uint16                    `json:"mm_since_last_intersection_code"`

	Delocalized bool      `json:"delocalized"`
	Messages    int       `json:"messages"`
	LastUpdate  time.Time `json:"last_update"`
}

// MarshalJSON encodes a non-finite Offset as a string.
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	return json.Marshal(struct {
		plain
		Offset protocol.JSONFloat `json:"offset_from_road_centre_mm"`
	}{plain(s), protocol.JSONFloat(s.Offset)})
}

// Vehicle aggregates decoded telemetry for one vehicle. It is safe for
// concurrent use; readers take a Snapshot.
type Vehicle struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

// New returns a Vehicle for the given name and Bluetooth address.
func New(name, address string) *Vehicle {
	return &Vehicle{
		state: State{Name: name, Address: address},
		now:   time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (v *Vehicle) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *Vehicle) Name() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state.Name
}

// update applies fn under the write lock and stamps the update.
func (v *Vehicle) update(fn func(s *State)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.state)
	v.state.Messages++
	v.state.LastUpdate = v.now()
}

func (v *Vehicle) ProcessVersionResponse(m *protocol.VersionResponse) {
	v.update(func(s *State) { s.Version = m.Version })
}

func (v *Vehicle) ProcessBatteryLevelResponse(m *protocol.BatteryLevelResponse) {
	v.update(func(s *State) { s.Battery = m.BatteryLevel })
}

// ProcessSDKMode records an SDK mode command sent to the vehicle.
func (v *Vehicle) ProcessSDKMode(m *protocol.SDKMode) {
	v.update(func(s *State) { s.SDKModeOn = m.On != 0 })
}

func (v *Vehicle) ProcessPositionUpdate(m *protocol.PositionUpdate) {
	v.update(func(s *State) {
		s.LocationID = m.LocationID
		s.Offset = m.Offset
		s.Speed = m.Speed
		s.ParsingFlags = m.ParsingFlags
		s.LastDesiredLaneChangeSpeed = m.LastDesiredLaneChangeSpeed
		s.LastDesiredSpeed = m.LastDesiredSpeed
		s.Delocalized = false
	})
}

func (v *Vehicle) ProcessTransitionUpdate(m *protocol.TransitionUpdate) {
	v.update(func(s *State) {
		s.RoadPieceIdx = m.RoadPieceIdx
		s.RoadPieceIdxPrev = m.RoadPieceIdxPrev
		s.Offset = m.Offset
		s.LastDesiredLaneChangeSpeed = m.LastDesiredLaneChangeSpeed
		s.UphillCounter = m.UphillCounter
		s.DownhillCounter = m.DownhillCounter
		s.LeftWheelDistCm = m.LeftWheelDistCm
		s.RightWheelDistCm = m.RightWheelDistCm
		s.Delocalized = false
	})
}

func (v *Vehicle) ProcessIntersectionUpdate(m *protocol.IntersectionUpdate) {
	v.update(func(s *State) {
		s.Offset = m.Offset
		s.IntersectionCode = m.Code
		s.IsExitingIntersection = m.IsExiting
		s.MmSinceLastTransitionBar = m.MmSinceLastTransitionBar
		s.MmSinceLastIntersectionCode = m.MmSinceLastIntersectionCode
	})
}

func (v *Vehicle) ProcessOffsetFromRoadCentreUpdate(m *protocol.OffsetFromRoadCentreUpdate) {
	v.update(func(s *State) { s.Offset = m.Offset })
}

// ProcessDelocalized marks the vehicle as having lost its position. The
// next position or transition update clears the flag.
func (v *Vehicle) ProcessDelocalized() {
	v.update(func(s *State) { s.Delocalized = true })
}

// Apply routes a decoded message to the matching Process method. Messages
// that carry no state are ignored.
func (v *Vehicle) Apply(msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.VersionResponse:
		v.ProcessVersionResponse(m)
	case *protocol.BatteryLevelResponse:
		v.ProcessBatteryLevelResponse(m)
	case *protocol.SDKMode:
		v.ProcessSDKMode(m)
	case *protocol.PositionUpdate:
		v.ProcessPositionUpdate(m)
	case *protocol.TransitionUpdate:
		v.ProcessTransitionUpdate(m)
	case *protocol.IntersectionUpdate:
		v.ProcessIntersectionUpdate(m)
	case *protocol.OffsetFromRoadCentreUpdate:
		v.ProcessOffsetFromRoadCentreUpdate(m)
	case *protocol.Envelope:
		if m.ID == protocol.MsgVehicleDelocalized {
			v.ProcessDelocalized()
		}
	}
}

// Handle decodes one notification and applies it. On a decode error the
// state is left untouched.
func (v *Vehicle) Handle(data []byte, e wire.Endian) (protocol.Message, error) {
	msg, err := protocol.DecodeMessage(data, e)
	if err != nil {
		logging.Warn("Undecodable vehicle notification",
			zap.String("vehicle", v.Name()),
			zap.Int("length", len(data)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("handle notification: %w", err)
	}
	logging.LogVehicleMessage(v.Name(), "in", msg.Type().String(), data)
	v.Apply(msg)
	return msg, nil
}

// ApplyAdvertisement records the name and firmware version found in a scan.
// A scan result is not a vehicle message, so Messages is left alone.
func (v *Vehicle) ApplyAdvertisement(adv *advertisement.Packet) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if name := adv.Name(); name != "" {
		v.state.Name = name
	}
	v.state.Version = adv.LocalName.Version
	v.state.LastUpdate = v.now()
}

// Options control the command sequence built by Configure.
type Options struct {
	ByteOrder      wire.Endian
	LaneResetSpeed uint16
	LaneResetAccel uint16
}

// DefaultOptions returns little-endian encoding with the default lane reset.
func DefaultOptions() Options {
	return Options{
		ByteOrder:      wire.LittleEndian,
		LaneResetSpeed: DefaultLaneResetSpeed,
		LaneResetAccel: DefaultLaneResetAccel,
	}
}

// Configure returns the encoded commands to send after connecting: SDK mode
// on with localisation override (skipped when SDK mode is already on),
// then a lane reset to the road centre.
func (v *Vehicle) Configure(opts Options) ([][]byte, error) {
	if opts.LaneResetSpeed == 0 {
		opts.LaneResetSpeed = DefaultLaneResetSpeed
	}
	if opts.LaneResetAccel == 0 {
		opts.LaneResetAccel = DefaultLaneResetAccel
	}

	var msgs []protocol.Message
	if !v.Snapshot().SDKModeOn {
		msgs = append(msgs, protocol.NewSDKMode(1, protocol.SDKOptionOverrideLocalization))
	}
	msgs = append(msgs, protocol.NewChangeLane(opts.LaneResetSpeed, opts.LaneResetAccel, 0.0))

	commands := make([][]byte, 0, len(msgs))
	for _, m := range msgs {
		data, err := protocol.Encode(m, opts.ByteOrder)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", m.Type(), err)
		}
		commands = append(commands, data)
	}

	logging.Info("Vehicle configuration built",
		zap.String("vehicle", v.Name()),
		zap.Int("commands", len(commands)),
		zap.Stringer("byte_order", opts.ByteOrder),
	)
	return commands, nil
}
