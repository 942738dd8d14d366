// Package wire provides the endianness-aware field primitives shared by the
// vehicle message codec and the advertisement codec.
//
// A Reader or Writer walks a caller-owned buffer with a cursor. Every
// multi-byte field is read or written with the byte order chosen by the
// caller; there is no implicit default. Errors are sticky: after the first
// out-of-range access every further call is a no-op and Err reports the
// failure, so a decoder can read all of its fields and check once.
//
//	r := wire.NewReader(data, wire.BigEndian)
//	size := r.U8()
//	version := r.U16()
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// Length validation against a message's static size is done up front with
// CheckExact or CheckMax, which produce a *SizeError matching
// ErrSizeMismatch.
package wire
