// Package vehicle tracks the state of one connected vehicle.
//
// A Vehicle stores the fields of decoded responses and telemetry (speed,
// offset, road piece, intersection data, battery, firmware version) and
// builds the command sequence a controller sends right after connecting.
// It does not talk to the radio: callers feed it notification bytes with
// Handle and transmit whatever Configure returns.
package vehicle
