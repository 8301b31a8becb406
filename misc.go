package elfit

import (
	"github.com/midbel/elfit/elf"
)

// float ABI flag of 32-bit ARM objects.
const armHardFloat = 0x400

// Arch gives the name package managers use for the architecture of h.
func Arch(h *elf.FileHeader) string {
	switch h.Machine {
	case elf.Machine386:
		return "i386"
	case elf.MachineX86_64:
		if h.Is32() {
			return "x32"
		}
		return "amd64"
	case elf.MachineAARCH64:
		return "arm64"
	case elf.MachineARM:
		if h.Flags&armHardFloat != 0 {
			return "armhf"
		}
		return "armel"
	case elf.MachineRISCV:
		if h.Is32() {
			return "riscv32"
		}
		return "riscv64"
	case elf.MachinePPC:
		return "powerpc"
	case elf.MachinePPC64:
		if h.IsLittle() {
			return "ppc64el"
		}
		return "ppc64"
	case elf.MachineMIPS, elf.MachineMIPSRS3LE:
		return mipsArch(h)
	case elf.MachineS390:
		if h.Is64() {
			return "s390x"
		}
		return "s390"
	case elf.MachineSPARC, elf.MachineSPARC32P:
		return "sparc"
	case elf.MachineSPARCV9:
		return "sparc64"
	case elf.MachineIA64:
		return "ia64"
	case elf.MachineLoongArch:
		return "loong64"
	case elf.MachineSH:
		return "sh4"
	case elf.MachinePARISC:
		return "hppa"
	case elf.Machine68K:
		return "m68k"
	default:
		return "noarch"
	}
}

func mipsArch(h *elf.FileHeader) string {
	arch := "mips"
	if h.Is64() {
		arch += "64"
	}
	if h.IsLittle() {
		arch += "el"
	}
	return arch
}
