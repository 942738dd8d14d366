package config

import (
	"time"

	"github.com/overdrivekit/overdrive/internal/advertisement"
	"github.com/overdrivekit/overdrive/internal/vehicle"
	"github.com/overdrivekit/overdrive/internal/wire"
)

// Registry represents the entire user configuration file.
// This stores user-defined metadata for vehicles and application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Vehicles    map[string]*Vehicle `yaml:"vehicles,omitempty"` // Keyed by Bluetooth address
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Vehicle represents what we remember about a single vehicle.
// This is keyed by the vehicle's Bluetooth address in the Registry.
type Vehicle struct {
	Nickname  string    `yaml:"nickname,omitempty"`  // User-friendly name
	Name      string    `yaml:"name,omitempty"`      // Name from the advertisement
	ModelID   uint8     `yaml:"model_id,omitempty"`  // From manufacturer data
	ProductID uint16    `yaml:"product_id,omitempty"`
	Firmware  uint16    `yaml:"firmware,omitempty"`  // Last seen firmware version
	LastSeen  time.Time `yaml:"last_seen,omitempty"` // Last scan or connection time
}

// DisplayName prefers the nickname over the advertised name.
func (v *Vehicle) DisplayName() string {
	if v.Nickname != "" {
		return v.Nickname
	}
	return v.Name
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ByteOrder      wire.Endian  `yaml:"byte_order"`       // Byte order for outbound commands
	LaneResetSpeed uint16       `yaml:"lane_reset_speed"` // mm/s, used when configuring a vehicle
	LaneResetAccel uint16       `yaml:"lane_reset_accel"` // mm/s^2
	ScanTimeout    int          `yaml:"scan_timeout"`     // Bridge discovery timeout in seconds
	Bridge         *BridgePrefs `yaml:"bridge,omitempty"`
}

// BridgePrefs holds defaults for the overdrive-bridge server.
type BridgePrefs struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Announce   bool   `yaml:"announce"`              // Advertise via mDNS
	CaptureDir string `yaml:"capture_dir,omitempty"` // JSONL capture of inbound frames
}

func defaultPreferences() *Preferences {
	return &Preferences{
		ByteOrder:      wire.LittleEndian,
		LaneResetSpeed: vehicle.DefaultLaneResetSpeed,
		LaneResetAccel: vehicle.DefaultLaneResetAccel,
		ScanTimeout:    5,
		Bridge: &BridgePrefs{
			Host:     "0.0.0.0",
			Port:     8765,
			Announce: true,
		},
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Vehicles:    make(map[string]*Vehicle),
		Preferences: defaultPreferences(),
	}
}

// GetVehicle retrieves vehicle metadata by address.
// Returns nil if the vehicle doesn't exist in the registry.
func (r *Registry) GetVehicle(address string) *Vehicle {
	return r.Vehicles[address]
}

// EnsureVehicle ensures a vehicle entry exists in the registry.
// Returns the vehicle entry (existing or newly created).
func (r *Registry) EnsureVehicle(address string) *Vehicle {
	if r.Vehicles == nil {
		r.Vehicles = make(map[string]*Vehicle)
	}

	if v, exists := r.Vehicles[address]; exists {
		return v
	}

	v := &Vehicle{}
	r.Vehicles[address] = v
	return v
}

// RecordAdvertisement updates a vehicle entry from a decoded advertisement.
func (r *Registry) RecordAdvertisement(address string, adv *advertisement.Packet) {
	v := r.EnsureVehicle(address)
	if name := adv.Name(); name != "" {
		v.Name = name
	}
	v.ModelID = adv.MfgData.ModelID
	v.ProductID = adv.MfgData.ProductID
	v.Firmware = adv.LocalName.Version
	v.LastSeen = time.Now()
}

// SetVehicleNickname sets a user-friendly nickname for a vehicle.
func (r *Registry) SetVehicleNickname(address, nickname string) {
	v := r.EnsureVehicle(address)
	v.Nickname = nickname
}

// RemoveVehicle forgets a vehicle. It reports whether an entry existed.
func (r *Registry) RemoveVehicle(address string) bool {
	if _, ok := r.Vehicles[address]; !ok {
		return false
	}
	delete(r.Vehicles, address)
	return true
}

// VehicleOptions returns the options for vehicle.Configure taken from the
// preferences.
func (r *Registry) VehicleOptions() vehicle.Options {
	opts := vehicle.DefaultOptions()
	if p := r.Preferences; p != nil {
		opts.ByteOrder = p.ByteOrder
		if p.LaneResetSpeed != 0 {
			opts.LaneResetSpeed = p.LaneResetSpeed
		}
		if p.LaneResetAccel != 0 {
			opts.LaneResetAccel = p.LaneResetAccel
		}
	}
	return opts
}
