// Package discovery announces and finds overdrive-bridge instances via mDNS.
//
// Bridges register the "_overdrive._tcp" service type with TXT records
// describing how to talk to them:
//
//	order=little    byte order of vehicle frames and commands
//	version=1.2.0   bridge build version
//	path=/ws        WebSocket endpoint
//
// # Usage Example
//
//	// Announce a bridge
//	ann, err := discovery.Announce("garage", 8765, wire.LittleEndian, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer ann.Shutdown()
//
//	// Find bridges
//	bridges, err := discovery.NewScanner().Scan(ctx)
//	for _, b := range bridges {
//	    fmt.Println(b.Instance, b.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Bridges must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
