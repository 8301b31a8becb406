package elf

import (
	"encoding/binary"
)

func byteOrder(little bool) binary.ByteOrder {
	if little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Uint16 decodes the two bytes of b. b must hold exactly two bytes.
func Uint16(b []byte, little bool) uint16 {
	return byteOrder(little).Uint16(b[:2])
}

func Uint32(b []byte, little bool) uint32 {
	return byteOrder(little).Uint32(b[:4])
}

func Uint64(b []byte, little bool) uint64 {
	return byteOrder(little).Uint64(b[:8])
}
