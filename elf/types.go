// This file is part of armlink.
//
// armlink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armlink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armlink.  If not, see <https://www.gnu.org/licenses/>.

package elf

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
)

// sizes of the ELF32 records.
const (
	HeaderSize        = 52
	ProgramHeaderSize = 32
	SectionHeaderSize = 40
	SymbolSize        = 16
	RelSize           = 8
	RelaSize          = 12
)

// File is the result of interpreting an ELF32 file. The lengths of the Progs
// and Sections arrays match the counts declared in the header.
type File struct {
	ByteOrder binary.ByteOrder

	// identification bytes
	Class      elf.Class
	Data       elf.Data
	Version    elf.Version
	OSABI      elf.OSABI
	ABIVersion uint8

	Type       elf.Type
	Machine    elf.Machine
	ObjVersion uint32
	Entry      uint32
	PhOff      uint32
	ShOff      uint32
	Flags      uint32
	EhSize     uint16
	PhEntSize  uint16
	PhNum      uint16
	ShEntSize  uint16
	ShNum      uint16
	ShStrNdx   uint16

	Progs    []ProgramHeader
	Sections []SectionHeader

	// symbols are only present if Interpret() was asked for them and the
	// file has a symbol table. the first entry is the null symbol
	Symbols []Symbol

	// index of the symbol table section. zero if there is no symbol table or
	// if symbols were not requested
	SymbolTable int
}

func (f *File) String() string {
	return fmt.Sprintf("%s %s %s entry=%08x progs=%d sections=%d symbols=%d",
		f.Class, f.Type, f.Machine, f.Entry, len(f.Progs), len(f.Sections), len(f.Symbols))
}

// ProgramHeader describes a segment of an executable.
type ProgramHeader struct {
	Type   elf.ProgType
	Offset uint32
	Vaddr  uint32
	Paddr  uint32
	Filesz uint32
	Memsz  uint32
	Flags  elf.ProgFlag
	Align  uint32
}

func (p ProgramHeader) String() string {
	return fmt.Sprintf("%s vaddr=%08x filesz=%d memsz=%d %s", p.Type, p.Vaddr, p.Filesz, p.Memsz, p.Flags)
}

// SectionHeader describes a section of the file.
type SectionHeader struct {
	// index of the section in the section header table
	Index int

	Name       string
	NameOffset uint32

	Type      elf.SectionType
	Flags     elf.SectionFlag
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

func (s SectionHeader) String() string {
	return fmt.Sprintf("[%d] %s %s size=%d align=%d %s", s.Index, s.Name, s.Type, s.Size, s.Addralign, s.Flags)
}

// Alloc returns true if the section occupies memory when the file is loaded.
func (s *SectionHeader) Alloc() bool {
	return s.Flags&elf.SHF_ALLOC == elf.SHF_ALLOC
}

// Alignment returns the alignment of the section. Values of zero and one both
// mean that the section has no alignment constraint.
func (s *SectionHeader) Alignment() uint32 {
	if s.Addralign == 0 {
		return 1
	}
	return s.Addralign
}

// Symbol is an entry in the symbol table.
type Symbol struct {
	// index of the symbol in the symbol table
	Index int

	Name       string
	NameOffset uint32

	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Type  elf.SymType
	Bind  elf.SymBind

	// section index clamped to the number of sections. an index at or beyond
	// the section count (which includes the reserved indices SHN_ABS and
	// SHN_COMMON) is clamped to zero
	Section int

	// the section index as it appears in the file
	RawSection elf.SectionIndex
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s %08x %s %s", s.Name, s.Value, s.Bind, s.Type)
}

// Absolute returns true if the symbol's value is an absolute address.
func (s *Symbol) Absolute() bool {
	return s.RawSection == elf.SHN_ABS
}

// Undefined returns true if the symbol is not defined in this file.
func (s *Symbol) Undefined() bool {
	return s.Section == int(elf.SHN_UNDEF) && !s.Absolute()
}

// Exported returns true if the symbol is defined in this file and is visible
// to other files.
func (s *Symbol) Exported() bool {
	if s.Undefined() || s.Name == "" {
		return false
	}
	return s.Bind == elf.STB_GLOBAL || s.Bind == elf.STB_WEAK
}
