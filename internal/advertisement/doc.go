// Package advertisement decodes the BLE advertisement packets vehicles
// broadcast while waiting for a connection.
//
// Packets are decode only. Every decoder requires an exact length
// (LocalNameSize, MfgDataSize, PacketSize) and fails with
// wire.ErrSizeMismatch otherwise. Byte slices are copied out of the input,
// so decoded values stay valid after the scan buffer is reused.
//
//	adv, err := advertisement.Decode(scanData, wire.LittleEndian)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(adv.Name(), adv.LocalName.Version)
package advertisement
