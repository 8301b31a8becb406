package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteOrder(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	assert.Equal(t, uint16(0x0201), Uint16(b[:2], true))
	assert.Equal(t, uint16(0x0102), Uint16(b[:2], false))
	assert.Equal(t, uint32(0x04030201), Uint32(b[:4], true))
	assert.Equal(t, uint32(0x01020304), Uint32(b[:4], false))
	assert.Equal(t, uint64(0x0807060504030201), Uint64(b, true))
	assert.Equal(t, uint64(0x0102030405060708), Uint64(b, false))
}

func TestByteOrderShortInput(t *testing.T) {
	assert.Panics(t, func() { Uint32([]byte{1, 2}, true) })
}
