package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/overdrivekit/overdrive/internal/wire"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	return &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: instance, Service: ServiceType, Domain: ServiceDomain},
		HostName:      host,
		Port:          port,
		AddrIPv4:      v4,
		AddrIPv6:      v6,
		Text:          txt,
	}
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name      string
		entry     *zeroconf.ServiceEntry
		wantNil   bool
		wantIP    string
		wantPort  int
		wantOrder wire.Endian
	}{
		{
			name:      "bridge with IPv4",
			entry:     entry("garage", "garage-pi.local.", 8765, []net.IP{net.ParseIP("192.168.4.16")}, nil, "order=little", "version=1.2.0"),
			wantIP:    "192.168.4.16",
			wantPort:  8765,
			wantOrder: wire.LittleEndian,
		},
		{
			name:      "big endian bridge on custom port",
			entry:     entry("lab", "lab.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil, "order=big"),
			wantIP:    "10.0.0.5",
			wantPort:  9000,
			wantOrder: wire.BigEndian,
		},
		{
			name:      "no port specified (should default to 8765)",
			entry:     entry("garage", "garage.local.", 0, []net.IP{net.ParseIP("172.16.0.1")}, nil),
			wantIP:    "172.16.0.1",
			wantPort:  DefaultPort,
			wantOrder: wire.LittleEndian,
		},
		{
			name:      "IPv6 only bridge",
			entry:     entry("garage", "garage.local.", 8765, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:    "fe80::1",
			wantPort:  8765,
			wantOrder: wire.LittleEndian,
		},
		{
			name:      "both IPv4 and IPv6 (should prefer IPv4)",
			entry:     entry("garage", "garage.local.", 8765, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantIP:    "192.168.1.50",
			wantPort:  8765,
			wantOrder: wire.LittleEndian,
		},
		{
			name:    "no instance name",
			entry:   entry("", "garage.local.", 8765, []net.IP{net.ParseIP("192.168.1.1")}, nil),
			wantNil: true,
		},
		{
			name:    "no IP address",
			entry:   entry("garage", "garage.local.", 8765, nil, nil),
			wantNil: true,
		},
		{
			name:    "unparseable byte order",
			entry:   entry("garage", "garage.local.", 8765, []net.IP{net.ParseIP("192.168.1.1")}, nil, "order=middle"),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if bridge != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", bridge)
				}
				return
			}

			if bridge == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil bridge")
			}
			if bridge.Instance != tt.entry.Instance {
				t.Errorf("bridge.Instance = %v, want %v", bridge.Instance, tt.entry.Instance)
			}
			if bridge.IP != tt.wantIP {
				t.Errorf("bridge.IP = %v, want %v", bridge.IP, tt.wantIP)
			}
			if bridge.Port != tt.wantPort {
				t.Errorf("bridge.Port = %v, want %v", bridge.Port, tt.wantPort)
			}
			if bridge.ByteOrder != tt.wantOrder {
				t.Errorf("bridge.ByteOrder = %v, want %v", bridge.ByteOrder, tt.wantOrder)
			}
			if bridge.Hostname != tt.entry.HostName {
				t.Errorf("bridge.Hostname = %v, want %v", bridge.Hostname, tt.entry.HostName)
			}
			if time.Since(bridge.DiscoveredAt) > time.Second {
				t.Errorf("bridge.DiscoveredAt is not recent: %v", bridge.DiscoveredAt)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"order=big", "version=1.0", "flag", "path=/ws=x"})

	expected := map[string]string{
		"order":   "big",
		"version": "1.0",
		"flag":    "", // Key without value
		"path":    "/ws=x",
	}

	if len(got) != len(expected) {
		t.Errorf("parseTXT() has %d entries, want %d", len(got), len(expected))
	}
	for key, want := range expected {
		if actual, ok := got[key]; !ok {
			t.Errorf("parseTXT() missing key %q", key)
		} else if actual != want {
			t.Errorf("parseTXT()[%q] = %q, want %q", key, actual, want)
		}
	}
}

func TestTXTRecordsRoundTrip(t *testing.T) {
	records := TXTRecords(wire.BigEndian, "1.2.0")
	bridge := parseServiceEntry(entry("lab", "lab.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil, records...))
	if bridge == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if bridge.ByteOrder != wire.BigEndian {
		t.Errorf("ByteOrder = %v, want big", bridge.ByteOrder)
	}
	if bridge.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", bridge.Version)
	}
	if got, want := bridge.URL(), "ws://10.0.0.5:9000/ws"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestBridgeURL(t *testing.T) {
	tests := []struct {
		name   string
		bridge *Bridge
		want   string
	}{
		{"default path", &Bridge{IP: "192.168.4.16", Port: 8765}, "ws://192.168.4.16:8765/ws"},
		{"custom path", &Bridge{IP: "10.0.0.5", Port: 80, Metadata: map[string]string{"path": "/bridge"}}, "ws://10.0.0.5:80/bridge"},
		{"ipv6", &Bridge{IP: "fe80::1", Port: 8765}, "ws://[fe80::1]:8765/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bridge.URL(); got != tt.want {
				t.Errorf("URL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBridgeString(t *testing.T) {
	b := &Bridge{Instance: "garage", Hostname: "garage-pi.local.", IP: "192.168.4.16", Port: 8765}
	want := "Overdrive bridge garage (garage-pi.local.) at 192.168.4.16:8765"
	if b.String() != want {
		t.Errorf("String() = %v, want %v", b.String(), want)
	}
	if b.GetMetadata("order") != "" {
		t.Errorf("GetMetadata() on nil metadata should be empty")
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestAnnouncementShutdownNil(t *testing.T) {
	var a *Announcement
	a.Shutdown()
}
