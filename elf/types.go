package elf

import (
	"fmt"
	"strings"
)

type Class uint8

const (
	ClassUnknown Class = 0
	Class32      Class = 1
	Class64      Class = 2
)

func (c Class) String() string {
	switch c {
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return "unknown"
	}
}

type Endianness uint8

const (
	Little Endianness = 1
	Big    Endianness = 2
)

func (e Endianness) String() string {
	switch e {
	case Little:
		return "little endian"
	case Big:
		return "big endian"
	default:
		return "unknown"
	}
}

// Range tells in which reserved range a numeric value falls.
type Range uint8

const (
	RangeNone Range = iota
	RangeOS
	RangeProc
	RangeUser
)

func (r Range) String() string {
	switch r {
	case RangeOS:
		return "os"
	case RangeProc:
		return "proc"
	case RangeUser:
		return "user"
	default:
		return ""
	}
}

type OSABI uint8

const (
	AbiSystemV  OSABI = 0x00
	AbiHPUX     OSABI = 0x01
	AbiNetBSD   OSABI = 0x02
	AbiLinux    OSABI = 0x03
	AbiHurd     OSABI = 0x04
	AbiSolaris  OSABI = 0x06
	AbiAIX      OSABI = 0x07
	AbiIRIX     OSABI = 0x08
	AbiFreeBSD  OSABI = 0x09
	AbiTru64    OSABI = 0x0a
	AbiModesto  OSABI = 0x0b
	AbiOpenBSD  OSABI = 0x0c
	AbiOpenVMS  OSABI = 0x0d
	AbiNonStop  OSABI = 0x0e
	AbiAROS     OSABI = 0x0f
	AbiFenixOS  OSABI = 0x10
	AbiCloudABI OSABI = 0x11
)

var abiNames = map[OSABI]string{
	AbiSystemV:  "UNIX - System V",
	AbiHPUX:     "HP-UX",
	AbiNetBSD:   "NetBSD",
	AbiLinux:    "Linux",
	AbiHurd:     "GNU Hurd",
	AbiSolaris:  "Solaris",
	AbiAIX:      "AIX",
	AbiIRIX:     "IRIX",
	AbiFreeBSD:  "FreeBSD",
	AbiTru64:    "Tru64",
	AbiModesto:  "Novell Modesto",
	AbiOpenBSD:  "OpenBSD",
	AbiOpenVMS:  "OpenVMS",
	AbiNonStop:  "NonStop Kernel",
	AbiAROS:     "AROS",
	AbiFenixOS:  "FenixOS",
	AbiCloudABI: "CloudABI",
}

func (a OSABI) String() string {
	if n, ok := abiNames[a]; ok {
		return n
	}
	return fmt.Sprintf("abi(%#x)", uint8(a))
}

func parseOSABI(v uint8) (OSABI, bool) {
	_, ok := abiNames[OSABI(v)]
	return OSABI(v), ok
}

type Type uint16

const (
	TypeNone   Type = 0
	TypeRel    Type = 1
	TypeExec   Type = 2
	TypeDyn    Type = 3
	TypeCore   Type = 4
	TypeLoOS   Type = 0xfe00
	TypeHiOS   Type = 0xfeff
	TypeLoProc Type = 0xff00
	TypeHiProc Type = 0xffff
)

func (t Type) Range() (Range, uint16) {
	switch {
	case t >= TypeLoOS && t <= TypeHiOS:
		return RangeOS, uint16(t - TypeLoOS)
	case t >= TypeLoProc:
		return RangeProc, uint16(t - TypeLoProc)
	default:
		return RangeNone, 0
	}
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "NONE (No file type)"
	case TypeRel:
		return "REL (Relocatable file)"
	case TypeExec:
		return "EXEC (Executable file)"
	case TypeDyn:
		return "DYN (Shared object file)"
	case TypeCore:
		return "CORE (Core file)"
	}
	if r, off := t.Range(); r != RangeNone {
		return fmt.Sprintf("%s+%#x", r, off)
	}
	return fmt.Sprintf("type(%#x)", uint16(t))
}

func parseType(v uint16) (Type, bool) {
	t := Type(v)
	if t <= TypeCore {
		return t, true
	}
	r, _ := t.Range()
	return t, r != RangeNone
}

type Machine uint16

const (
	MachineNone      Machine = 0x00
	MachineM32       Machine = 0x01
	MachineSPARC     Machine = 0x02
	Machine386       Machine = 0x03
	Machine68K       Machine = 0x04
	Machine88K       Machine = 0x05
	Machine860       Machine = 0x07
	MachineMIPS      Machine = 0x08
	MachineMIPSRS3LE Machine = 0x0a
	MachinePARISC    Machine = 0x0f
	MachineSPARC32P  Machine = 0x12
	Machine960       Machine = 0x13
	MachinePPC       Machine = 0x14
	MachinePPC64     Machine = 0x15
	MachineS390      Machine = 0x16
	MachineARM       Machine = 0x28
	MachineSH        Machine = 0x2a
	MachineSPARCV9   Machine = 0x2b
	MachineIA64      Machine = 0x32
	MachineX86_64    Machine = 0x3e
	MachineAVR       Machine = 0x53
	MachineMSP430    Machine = 0x69
	MachineAARCH64   Machine = 0xb7
	MachineCUDA      Machine = 0xbe
	MachineAMDGPU    Machine = 0xe0
	MachineRISCV     Machine = 0xf3
	MachineBPF       Machine = 0xf7
	MachineLoongArch Machine = 0x102
)

var machineNames = map[Machine]string{
	MachineNone:      "None",
	MachineM32:       "WE32100",
	MachineSPARC:     "Sparc",
	Machine386:       "Intel 80386",
	Machine68K:       "MC68000",
	Machine88K:       "MC88000",
	Machine860:       "Intel 80860",
	MachineMIPS:      "MIPS R3000",
	MachineMIPSRS3LE: "MIPS R3000 little endian",
	MachinePARISC:    "HPPA",
	MachineSPARC32P:  "Sparc v8+",
	Machine960:       "Intel 80960",
	MachinePPC:       "PowerPC",
	MachinePPC64:     "PowerPC64",
	MachineS390:      "IBM S/390",
	MachineARM:       "ARM",
	MachineSH:        "Renesas / SuperH SH",
	MachineSPARCV9:   "Sparc v9",
	MachineIA64:      "Intel IA-64",
	MachineX86_64:    "Advanced Micro Devices X86-64",
	MachineAVR:       "Atmel AVR 8-bit microcontroller",
	MachineMSP430:    "Texas Instruments msp430 microcontroller",
	MachineAARCH64:   "AArch64",
	MachineCUDA:      "NVIDIA CUDA architecture",
	MachineAMDGPU:    "AMD GPU",
	MachineRISCV:     "RISC-V",
	MachineBPF:       "Linux BPF",
	MachineLoongArch: "LoongArch",
}

func (m Machine) String() string {
	if n, ok := machineNames[m]; ok {
		return n
	}
	return fmt.Sprintf("machine(%#x)", uint16(m))
}

func parseMachine(v uint16) (Machine, bool) {
	_, ok := machineNames[Machine(v)]
	return Machine(v), ok
}

type ProgType uint32

const (
	ProgNull        ProgType = 0
	ProgLoad        ProgType = 1
	ProgDynamic     ProgType = 2
	ProgInterp      ProgType = 3
	ProgNote        ProgType = 4
	ProgShlib       ProgType = 5
	ProgPhdr        ProgType = 6
	ProgTLS         ProgType = 7
	ProgLoOS        ProgType = 0x60000000
	ProgGnuEhFrame  ProgType = 0x6474e550
	ProgGnuStack    ProgType = 0x6474e551
	ProgGnuRelro    ProgType = 0x6474e552
	ProgGnuProperty ProgType = 0x6474e553
	ProgHiOS        ProgType = 0x6fffffff
	ProgLoProc      ProgType = 0x70000000
	ProgHiProc      ProgType = 0x7fffffff
)

func (p ProgType) Range() (Range, uint32) {
	switch {
	case p >= ProgLoOS && p <= ProgHiOS:
		return RangeOS, uint32(p - ProgLoOS)
	case p >= ProgLoProc && p <= ProgHiProc:
		return RangeProc, uint32(p - ProgLoProc)
	default:
		return RangeNone, 0
	}
}

func (p ProgType) String() string {
	switch p {
	case ProgNull:
		return "NULL"
	case ProgLoad:
		return "LOAD"
	case ProgDynamic:
		return "DYNAMIC"
	case ProgInterp:
		return "INTERP"
	case ProgNote:
		return "NOTE"
	case ProgShlib:
		return "SHLIB"
	case ProgPhdr:
		return "PHDR"
	case ProgTLS:
		return "TLS"
	case ProgGnuEhFrame:
		return "GNU_EH_FRAME"
	case ProgGnuStack:
		return "GNU_STACK"
	case ProgGnuRelro:
		return "GNU_RELRO"
	case ProgGnuProperty:
		return "GNU_PROPERTY"
	}
	if r, off := p.Range(); r != RangeNone {
		return fmt.Sprintf("LO%s+%#x", strings.ToUpper(r.String()), off)
	}
	return fmt.Sprintf("prog(%#x)", uint32(p))
}

func parseProgType(v uint32) (ProgType, bool) {
	p := ProgType(v)
	if p <= ProgTLS {
		return p, true
	}
	r, _ := p.Range()
	return p, r != RangeNone
}

type ProgFlag uint32

const (
	ProgFlagX ProgFlag = 1 << 0
	ProgFlagW ProgFlag = 1 << 1
	ProgFlagR ProgFlag = 1 << 2
)

func (f ProgFlag) String() string {
	var str strings.Builder
	for _, x := range []struct {
		flag ProgFlag
		char byte
	}{
		{ProgFlagR, 'R'},
		{ProgFlagW, 'W'},
		{ProgFlagX, 'E'},
	} {
		if f&x.flag != 0 {
			str.WriteByte(x.char)
		} else {
			str.WriteByte(' ')
		}
	}
	return str.String()
}

type SectionType uint32

const (
	SectionNull         SectionType = 0x00
	SectionProgBits     SectionType = 0x01
	SectionSymTab       SectionType = 0x02
	SectionStrTab       SectionType = 0x03
	SectionRela         SectionType = 0x04
	SectionHash         SectionType = 0x05
	SectionDynamic      SectionType = 0x06
	SectionNote         SectionType = 0x07
	SectionNoBits       SectionType = 0x08
	SectionRel          SectionType = 0x09
	SectionShlib        SectionType = 0x0a
	SectionDynSym       SectionType = 0x0b
	SectionInitArray    SectionType = 0x0e
	SectionFiniArray    SectionType = 0x0f
	SectionPreinitArray SectionType = 0x10
	SectionGroup        SectionType = 0x11
	SectionSymTabShndx  SectionType = 0x12
	SectionNum          SectionType = 0x13
	SectionLoOS         SectionType = 0x60000000
	SectionLoProc       SectionType = 0x70000000
	SectionLoUser       SectionType = 0x80000000

	reservedSpan = 0x10000000
)

var sectionNames = map[SectionType]string{
	SectionNull:         "NULL",
	SectionProgBits:     "PROGBITS",
	SectionSymTab:       "SYMTAB",
	SectionStrTab:       "STRTAB",
	SectionRela:         "RELA",
	SectionHash:         "HASH",
	SectionDynamic:      "DYNAMIC",
	SectionNote:         "NOTE",
	SectionNoBits:       "NOBITS",
	SectionRel:          "REL",
	SectionShlib:        "SHLIB",
	SectionDynSym:       "DYNSYM",
	SectionInitArray:    "INIT_ARRAY",
	SectionFiniArray:    "FINI_ARRAY",
	SectionPreinitArray: "PREINIT_ARRAY",
	SectionGroup:        "GROUP",
	SectionSymTabShndx:  "SYMTAB_SHNDX",
	SectionNum:          "NUM",
}

// Range reports the reserved range of t and the offset of t inside it. Each
// range spans 2^28 values from its low bound.
func (t SectionType) Range() (Range, uint32) {
	switch {
	case t >= SectionLoOS && t < SectionLoOS+reservedSpan:
		return RangeOS, uint32(t - SectionLoOS)
	case t >= SectionLoProc && t < SectionLoProc+reservedSpan:
		return RangeProc, uint32(t - SectionLoProc)
	case t >= SectionLoUser && t < SectionLoUser+reservedSpan:
		return RangeUser, uint32(t - SectionLoUser)
	default:
		return RangeNone, 0
	}
}

func (t SectionType) String() string {
	if n, ok := sectionNames[t]; ok {
		return n
	}
	if r, off := t.Range(); r != RangeNone {
		return fmt.Sprintf("LO%s+%#x", strings.ToUpper(r.String()), off)
	}
	return fmt.Sprintf("section(%#x)", uint32(t))
}

func parseSectionType(v uint32) (SectionType, bool) {
	t := SectionType(v)
	if _, ok := sectionNames[t]; ok {
		return t, true
	}
	r, _ := t.Range()
	return t, r != RangeNone
}

type SectionFlag uint64

const (
	SectionFlagWrite     SectionFlag = 0x001
	SectionFlagAlloc     SectionFlag = 0x002
	SectionFlagExec      SectionFlag = 0x004
	SectionFlagMerge     SectionFlag = 0x010
	SectionFlagStrings   SectionFlag = 0x020
	SectionFlagInfoLink  SectionFlag = 0x040
	SectionFlagLinkOrder SectionFlag = 0x080
	SectionFlagOSNonConf SectionFlag = 0x100
	SectionFlagGroup     SectionFlag = 0x200
	SectionFlagTLS       SectionFlag = 0x400
	SectionFlagCompress  SectionFlag = 0x800
	SectionFlagMaskOS    SectionFlag = 0x0ff00000
	SectionFlagMaskProc  SectionFlag = 0xf0000000
)

var sectionFlagChars = []struct {
	flag SectionFlag
	char byte
}{
	{SectionFlagWrite, 'W'},
	{SectionFlagAlloc, 'A'},
	{SectionFlagExec, 'X'},
	{SectionFlagMerge, 'M'},
	{SectionFlagStrings, 'S'},
	{SectionFlagInfoLink, 'I'},
	{SectionFlagLinkOrder, 'L'},
	{SectionFlagOSNonConf, 'O'},
	{SectionFlagGroup, 'G'},
	{SectionFlagTLS, 'T'},
	{SectionFlagCompress, 'C'},
	{SectionFlagMaskOS, 'o'},
	{SectionFlagMaskProc, 'p'},
}

// String gives the flags in the letter notation of readelf.
func (f SectionFlag) String() string {
	var str strings.Builder
	for _, x := range sectionFlagChars {
		if f&x.flag != 0 {
			str.WriteByte(x.char)
		}
	}
	return str.String()
}
