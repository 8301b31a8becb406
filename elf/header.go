package elf

import (
	"bytes"
	"encoding/binary"
)

const versionCurrent = 1

var Magic = []byte{0x7f, 'E', 'L', 'F'}

type FileHeader struct {
	Class      Class
	Endianness Endianness
	AbiOs      OSABI
	AbiVersion uint8
	Type       Type
	Machine    Machine

	EntryAddr   uint64
	ProgramAddr uint64
	SectionAddr uint64

	Flags      uint32
	Size       uint16
	PhSize     uint16
	PhCount    uint16
	ShSize     uint16
	ShCount    uint16
	NamesIndex uint16
}

func (h FileHeader) Is32() bool {
	return h.Class == Class32
}

func (h FileHeader) Is64() bool {
	return h.Class == Class64
}

func (h FileHeader) IsLittle() bool {
	return h.Endianness == Little
}

func (h FileHeader) ByteOrder() binary.ByteOrder {
	return byteOrder(h.IsLittle())
}

func (h FileHeader) reader(buf []byte) (*reader, error) {
	lay := layoutOf(h.Class)
	if lay == nil {
		return nil, malformed("class", identClass, "unsupported class %d", h.Class)
	}
	r := reader{
		buf:    buf,
		little: h.IsLittle(),
		layout: lay,
	}
	return &r, nil
}

// PeekClass looks at the class byte only. It is meant to choose a decoding
// path before committing to a full decode and never fails.
func PeekClass(buf []byte) Class {
	if len(buf) <= identClass {
		return ClassUnknown
	}
	switch c := Class(buf[identClass]); c {
	case Class32, Class64:
		return c
	default:
		return ClassUnknown
	}
}

func DecodeHeader(buf []byte) (*FileHeader, error) {
	if len(buf) < len(Magic) || !bytes.Equal(buf[:len(Magic)], Magic) {
		n := len(Magic)
		if len(buf) < n {
			n = len(buf)
		}
		return nil, malformed("magic", 0, "invalid magic %x", buf[:n])
	}
	if len(buf) < identSize {
		return nil, malformed("ident", 0, "header too short (%d bytes)", len(buf))
	}
	var h FileHeader

	h.Class = Class(buf[identClass])
	lay := layoutOf(h.Class)
	if lay == nil {
		return nil, malformed("class", identClass, "unsupported class %d", buf[identClass])
	}
	switch e := Endianness(buf[identData]); e {
	case Little, Big:
		h.Endianness = e
	default:
		return nil, malformed("data", identData, "unsupported endianness %d", buf[identData])
	}
	if v := buf[identVersion]; v != versionCurrent {
		return nil, malformed("version", identVersion, "unsupported version %d", v)
	}
	abi, ok := parseOSABI(buf[identOSABI])
	if !ok {
		return nil, malformed("abi", identOSABI, "unknown abi %#x", buf[identOSABI])
	}
	h.AbiOs = abi
	h.AbiVersion = buf[identABIVersion]

	r := reader{
		buf:    buf,
		little: h.IsLittle(),
		layout: lay,
	}
	var (
		typ     = r.u16("type", offType)
		machine = r.u16("machine", offMachine)
		version = r.u32("version", offVersion)
	)
	if r.err != nil {
		return nil, r.err
	}
	if h.Type, ok = parseType(typ); !ok {
		return nil, malformed("type", offType, "unknown object type %#x", typ)
	}
	if h.Machine, ok = parseMachine(machine); !ok {
		return nil, malformed("machine", offMachine, "unknown machine %#x", machine)
	}
	if version != versionCurrent {
		return nil, malformed("version", offVersion, "unsupported version %d", version)
	}

	hl := lay.header
	h.EntryAddr = r.word("entry", hl.Entry)
	h.ProgramAddr = r.word("phoff", hl.Phoff)
	h.SectionAddr = r.word("shoff", hl.Shoff)
	h.Flags = r.u32("flags", hl.Flags)
	h.Size = r.u16("ehsize", hl.Ehsize)
	h.PhSize = r.u16("phentsize", hl.Phentsize)
	h.PhCount = r.u16("phnum", hl.Phnum)
	h.ShSize = r.u16("shentsize", hl.Shentsize)
	h.ShCount = r.u16("shnum", hl.Shnum)
	h.NamesIndex = r.u16("shstrndx", hl.Shstrndx)
	if r.err != nil {
		return nil, r.err
	}
	return &h, nil
}
