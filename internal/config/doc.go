// Package config provides user configuration management for the overdrive tools.
//
// This package manages a YAML configuration file that remembers vehicles seen
// in scans (name, model, firmware, nickname) and the preferences used when
// talking to them: the byte order for outbound commands, the lane reset
// parameters sent on connect and the bridge server defaults.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/overdrive/config.yaml or $HOME/.config/overdrive/config.yaml
//   - macOS: $HOME/.config/overdrive/config.yaml
//   - Windows: %LOCALAPPDATA%\overdrive\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//
//	registry.SetVehicleNickname("e6:d8:52:f1:d9:43", "Red Skull")
//	cmds, err := vehicle.New("Skull", addr).Configure(registry.VehicleOptions())
//
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// LoadRegistry returns a process-wide instance loaded once. Saves are
// serialised and written atomically (temp file then rename).
package config
