package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/overdrivekit/overdrive/internal/wire"
)

// Bridge represents an overdrive-bridge found on the network
type Bridge struct {
	// Instance is the mDNS instance name (e.g., "overdrive-garage")
	Instance string `json:"instance"`

	// Hostname is the mDNS hostname (e.g., "garage-pi.local.")
	Hostname string `json:"hostname"`

	// IP is the IPv4 address, or IPv6 when the bridge has none
	IP string `json:"ip"`

	// Port is the WebSocket port (typically 8765)
	Port int `json:"port"`

	// ByteOrder is the byte order the bridge decodes and encodes with
	ByteOrder wire.Endian `json:"byte_order"`

	// Version is the bridge build version from the TXT record
	Version string `json:"version"`

	// Metadata contains all mDNS TXT record data
	// Common fields: "order=little", "version=1.2.0", "path=/ws"
	Metadata map[string]string `json:"metadata,omitempty"`

	// DiscoveredAt is when the bridge was discovered
	DiscoveredAt time.Time `json:"discovered_at"`
}

// String returns a human-readable string representation of the bridge
func (b *Bridge) String() string {
	return fmt.Sprintf("Overdrive bridge %s (%s) at %s", b.Instance, b.Hostname, b.HostPort())
}

// HostPort returns the bridge address in host:port form.
func (b *Bridge) HostPort() string {
	return net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}

// URL returns the WebSocket URL for the bridge
func (b *Bridge) URL() string {
	path := b.GetMetadata(txtPath)
	if path == "" {
		path = DefaultPath
	}
	return fmt.Sprintf("ws://%s%s", b.HostPort(), path)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Bridge) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
