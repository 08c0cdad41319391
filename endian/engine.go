// Package endian provides byte order utilities for the BJData/UBJSON codec.
//
// This package combines encoding/binary's ByteOrder and AppendByteOrder
// interfaces into a single EndianEngine interface, exactly as
// github.com/arloliu/mebo's endian package does for its own binary format.
// A single engine value is threaded through the numeric packer, the
// encoder and the decoder so all three agree on byte order without each
// one re-deriving it from options.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface. binary.LittleEndian and
// binary.BigEndian both satisfy it, so no wrapper type is needed.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine. This is the
// default for BJData Draft 2.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used for UBJSON /
// BJData Draft 1 compatibility.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// EngineFor returns the little- or big-endian engine matching littleEndian.
func EngineFor(littleEndian bool) EndianEngine {
	if littleEndian {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}
