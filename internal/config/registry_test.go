package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/overdrivekit/overdrive/internal/advertisement"
	"github.com/overdrivekit/overdrive/internal/wire"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "overdrive") {
		t.Errorf("GetConfigDir() = %v, should contain 'overdrive'", configDir)
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(tmp, "overdrive"); got != want {
		t.Errorf("GetConfigDir() = %v, want %v", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Vehicles == nil {
		t.Error("NewRegistry().Vehicles should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.ByteOrder != wire.LittleEndian {
		t.Errorf("ByteOrder = %v, want little", reg.Preferences.ByteOrder)
	}
	if reg.Preferences.LaneResetSpeed != 300 || reg.Preferences.LaneResetAccel != 2500 {
		t.Errorf("lane reset = %d/%d, want 300/2500", reg.Preferences.LaneResetSpeed, reg.Preferences.LaneResetAccel)
	}
}

func TestRegistryEnsureVehicle(t *testing.T) {
	reg := NewRegistry()

	v1 := reg.EnsureVehicle("aa:bb:cc:dd:ee:01")
	if v1 == nil {
		t.Fatal("EnsureVehicle() returned nil")
	}

	v2 := reg.EnsureVehicle("aa:bb:cc:dd:ee:01")
	if v1 != v2 {
		t.Error("EnsureVehicle() should return same instance for same address")
	}

	v3 := reg.EnsureVehicle("aa:bb:cc:dd:ee:02")
	if v1 == v3 {
		t.Error("EnsureVehicle() should create new instance for different address")
	}
}

func TestRegistryRecordAdvertisement(t *testing.T) {
	reg := NewRegistry()
	adv := &advertisement.Packet{
		MfgData:   advertisement.MfgData{ModelID: 8, ProductID: 0xBEEF},
		LocalName: advertisement.LocalName{Version: 0x2671, Name: "Groundshock\x00\x00"},
	}

	before := time.Now()
	reg.RecordAdvertisement("aa:bb:cc:dd:ee:01", adv)
	after := time.Now()

	v := reg.GetVehicle("aa:bb:cc:dd:ee:01")
	if v == nil {
		t.Fatal("vehicle should exist after RecordAdvertisement()")
	}
	if v.Name != "Groundshock" {
		t.Errorf("Name = %q, want Groundshock", v.Name)
	}
	if v.ModelID != 8 || v.ProductID != 0xBEEF || v.Firmware != 0x2671 {
		t.Errorf("vehicle = %+v", v)
	}
	if v.LastSeen.Before(before) || v.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", v.LastSeen, before, after)
	}
}

func TestRegistryNicknameAndRemove(t *testing.T) {
	reg := NewRegistry()
	reg.SetVehicleNickname("aa:bb:cc:dd:ee:01", "Red Skull")

	v := reg.GetVehicle("aa:bb:cc:dd:ee:01")
	if v == nil || v.DisplayName() != "Red Skull" {
		t.Fatalf("DisplayName() = %v, want Red Skull", v)
	}

	if !reg.RemoveVehicle("aa:bb:cc:dd:ee:01") {
		t.Error("RemoveVehicle() = false, want true")
	}
	if reg.RemoveVehicle("aa:bb:cc:dd:ee:01") {
		t.Error("second RemoveVehicle() = true, want false")
	}
}

func TestRegistryVehicleOptions(t *testing.T) {
	reg := NewRegistry()
	reg.Preferences.ByteOrder = wire.BigEndian
	reg.Preferences.LaneResetSpeed = 400

	opts := reg.VehicleOptions()
	if opts.ByteOrder != wire.BigEndian {
		t.Errorf("ByteOrder = %v, want big", opts.ByteOrder)
	}
	if opts.LaneResetSpeed != 400 || opts.LaneResetAccel != 2500 {
		t.Errorf("options = %+v", opts)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := NewRegistry()
	reg.SetVehicleNickname("aa:bb:cc:dd:ee:01", "Test Vehicle")
	reg.EnsureVehicle("aa:bb:cc:dd:ee:01").Firmware = 0x2671
	reg.Preferences.ByteOrder = wire.BigEndian
	reg.Preferences.Bridge.CaptureDir = "/tmp/captures"

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# Overdrive Configuration File") {
		t.Errorf("saved file missing header comment")
	}
	if !strings.Contains(string(data), "byte_order: big") {
		t.Errorf("byte order not written as text:\n%s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind")
	}

	loaded, err := LoadRegistryFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFile() error = %v", err)
	}
	if diff := cmp.Diff(reg, loaded); diff != "" {
		t.Errorf("registry round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRegistryFileMissing(t *testing.T) {
	reg, err := LoadRegistryFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistryFile() error = %v", err)
	}
	if reg.Version != 1 || reg.Preferences == nil {
		t.Errorf("expected default registry, got %+v", reg)
	}
}

func TestLoadRegistryFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
vehicles:
  "aa:bb:cc:dd:ee:01":
    nickname: "Blue"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	reg, err := LoadRegistryFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFile() error = %v", err)
	}
	if reg.GetVehicle("aa:bb:cc:dd:ee:01").Nickname != "Blue" {
		t.Errorf("nickname not loaded")
	}
	if reg.Preferences == nil || reg.Preferences.Bridge == nil {
		t.Fatal("preferences not defaulted")
	}
	if reg.Preferences.Bridge.Port != 8765 {
		t.Errorf("Bridge.Port = %d, want 8765", reg.Preferences.Bridge.Port)
	}
}

func TestLoadRegistryFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"bad yaml", "version: [1\n"},
		{"bad byte order", "version: 1\npreferences:\n  byte_order: middle\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadRegistryFile(path); err == nil {
				t.Error("LoadRegistryFile() expected error")
			}
		})
	}
}

func BenchmarkEnsureVehicle(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureVehicle("aa:bb:cc:dd:ee:01")
	}
}
