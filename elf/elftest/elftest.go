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

// Package elftest synthesizes ELF32 files in memory for use in tests. Files
// are built from a description of their sections, symbols, relocations and
// (for executables) segments.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"

	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/relocation"
)

// Abs is the section name given to symbols with an absolute value.
const Abs = "*ABS*"

// Object describes the file to be built.
type Object struct {
	// defaults to ET_REL
	Type elf.Type

	// defaults to EM_ARM
	Machine elf.Machine

	// defaults to little-endian
	ByteOrder binary.ByteOrder

	Entry    uint32
	Sections []Section
	Symbols  []Symbol
	Segments []Segment
}

// Section describes a section. The name of the relocation section for a
// section is derived from the section's name.
type Section struct {
	Name  string
	Type  elf.SectionType
	Flags elf.SectionFlag
	Addr  uint32
	Align uint32
	Data  []byte

	// size of a SHT_NOBITS section
	Size uint32

	Relocations []Relocation

	// write relocations as SHT_RELA rather than SHT_REL
	Rela bool
}

// Relocation is an entry in a relocation section.
type Relocation struct {
	Offset uint32

	// name of symbol. the empty string means symbol index zero
	Symbol string

	Type   relocation.Type
	Addend int32
}

// Symbol describes a symbol table entry.
type Symbol struct {
	Name  string
	Value uint32
	Size  uint32
	Type  elf.SymType
	Bind  elf.SymBind

	// name of the section the symbol is defined in. the empty string means
	// the symbol is undefined. Abs means the symbol is absolute
	Section string
}

// Segment describes a PT_LOAD segment of an executable.
type Segment struct {
	Vaddr uint32
	Data  []byte

	// if Memsz is less than the length of Data then the length of Data is
	// used
	Memsz uint32
	Flags elf.ProgFlag
}

// strtab accumulates NUL terminated strings.
type strtab struct {
	buf []byte
}

func newStrtab() *strtab {
	return &strtab{buf: []byte{0}}
}

func (s *strtab) add(str string) uint32 {
	if str == "" {
		return 0
	}
	o := uint32(len(s.buf))
	s.buf = append(s.buf, []byte(str)...)
	s.buf = append(s.buf, 0)
	return o
}

func align4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// Bytes builds the file.
func (obj Object) Bytes() []byte {
	f := &armelf.File{
		ByteOrder:  obj.ByteOrder,
		Class:      elf.ELFCLASS32,
		Data:       elf.ELFDATA2LSB,
		Version:    elf.EV_CURRENT,
		OSABI:      elf.ELFOSABI_NONE,
		Type:       obj.Type,
		Machine:    obj.Machine,
		ObjVersion: uint32(elf.EV_CURRENT),
		Entry:      obj.Entry,
		EhSize:     armelf.HeaderSize,
	}
	if f.ByteOrder == nil {
		f.ByteOrder = binary.LittleEndian
	}
	if f.ByteOrder == binary.BigEndian {
		f.Data = elf.ELFDATA2MSB
	}
	if f.Type == elf.ET_NONE {
		f.Type = elf.ET_REL
	}
	if f.Machine == elf.EM_NONE {
		f.Machine = elf.EM_ARM
	}
	o := f.ByteOrder

	// section indexes
	sectionIdx := make(map[string]int)
	for i, s := range obj.Sections {
		sectionIdx[s.Name] = i + 1
	}
	numRel := 0
	for _, s := range obj.Sections {
		if len(s.Relocations) > 0 {
			numRel++
		}
	}
	symtabIdx := 1 + len(obj.Sections) + numRel
	strtabIdx := symtabIdx + 1
	shstrtabIdx := strtabIdx + 1

	// symbol table. index zero is the null symbol
	strs := newStrtab()
	symbolIdx := make(map[string]uint32)
	symtab := make([]byte, armelf.SymbolSize)
	firstGlobal := uint32(0)
	for i, s := range obj.Symbols {
		sym := armelf.Symbol{
			NameOffset: strs.add(s.Name),
			Value:      s.Value,
			Size:       s.Size,
			Type:       s.Type,
			Bind:       s.Bind,
		}
		switch s.Section {
		case "":
			sym.RawSection = elf.SHN_UNDEF
		case Abs:
			sym.RawSection = elf.SHN_ABS
		default:
			sym.RawSection = elf.SectionIndex(sectionIdx[s.Section])
		}
		if _, ok := symbolIdx[s.Name]; !ok {
			symbolIdx[s.Name] = uint32(i + 1)
		}
		if firstGlobal == 0 && s.Bind != elf.STB_LOCAL {
			firstGlobal = uint32(i + 1)
		}
		symtab = append(symtab, sym.Encode(o)...)
	}
	if firstGlobal == 0 {
		firstGlobal = uint32(len(obj.Symbols) + 1)
	}

	names := newStrtab()
	headers := []armelf.SectionHeader{{}}

	// file contents begin after the file header and program headers
	data := make([]byte, armelf.HeaderSize)
	if len(obj.Segments) > 0 {
		f.PhOff = armelf.HeaderSize
		f.PhNum = uint16(len(obj.Segments))
		f.PhEntSize = armelf.ProgramHeaderSize
		data = append(data, make([]byte, armelf.ProgramHeaderSize*len(obj.Segments))...)
	}

	place := func(b []byte) uint32 {
		data = align4(data)
		offset := uint32(len(data))
		data = append(data, b...)
		return offset
	}

	var progs []armelf.ProgramHeader
	for _, seg := range obj.Segments {
		memsz := seg.Memsz
		if memsz < uint32(len(seg.Data)) {
			memsz = uint32(len(seg.Data))
		}
		flags := seg.Flags
		if flags == 0 {
			flags = elf.PF_R | elf.PF_X
		}
		progs = append(progs, armelf.ProgramHeader{
			Type:   elf.PT_LOAD,
			Offset: place(seg.Data),
			Vaddr:  seg.Vaddr,
			Paddr:  seg.Vaddr,
			Filesz: uint32(len(seg.Data)),
			Memsz:  memsz,
			Flags:  flags,
			Align:  4,
		})
	}

	for _, s := range obj.Sections {
		h := armelf.SectionHeader{
			NameOffset: names.add(s.Name),
			Type:       s.Type,
			Flags:      s.Flags,
			Addr:       s.Addr,
			Addralign:  s.Align,
		}
		if h.Type == elf.SHT_NULL {
			h.Type = elf.SHT_PROGBITS
		}
		if h.Type == elf.SHT_NOBITS {
			h.Size = s.Size
			h.Offset = uint32(len(data))
		} else {
			h.Size = uint32(len(s.Data))
			h.Offset = place(s.Data)
		}
		headers = append(headers, h)
	}

	for i, s := range obj.Sections {
		if len(s.Relocations) == 0 {
			continue
		}
		var rel []byte
		for _, r := range s.Relocations {
			rel = append(rel, armelf.EncodeRel(o, r.Offset, symbolIdx[r.Symbol], uint32(r.Type), r.Addend, s.Rela)...)
		}
		h := armelf.SectionHeader{
			Type:      elf.SHT_REL,
			Link:      uint32(symtabIdx),
			Info:      uint32(i + 1),
			Addralign: 4,
			Entsize:   armelf.RelSize,
			Size:      uint32(len(rel)),
			Offset:    place(rel),
		}
		if s.Rela {
			h.Type = elf.SHT_RELA
			h.Entsize = armelf.RelaSize
			h.NameOffset = names.add(".rela" + s.Name)
		} else {
			h.NameOffset = names.add(".rel" + s.Name)
		}
		headers = append(headers, h)
	}

	headers = append(headers, armelf.SectionHeader{
		NameOffset: names.add(".symtab"),
		Type:       elf.SHT_SYMTAB,
		Link:       uint32(strtabIdx),
		Info:       firstGlobal,
		Addralign:  4,
		Entsize:    armelf.SymbolSize,
		Size:       uint32(len(symtab)),
		Offset:     place(symtab),
	})

	headers = append(headers, armelf.SectionHeader{
		NameOffset: names.add(".strtab"),
		Type:       elf.SHT_STRTAB,
		Addralign:  1,
		Size:       uint32(len(strs.buf)),
		Offset:     place(strs.buf),
	})

	shstrtabName := names.add(".shstrtab")
	headers = append(headers, armelf.SectionHeader{
		NameOffset: shstrtabName,
		Type:       elf.SHT_STRTAB,
		Addralign:  1,
		Size:       uint32(len(names.buf)),
		Offset:     place(names.buf),
	})

	// section header table
	data = align4(data)
	f.ShOff = uint32(len(data))
	f.ShNum = uint16(len(headers))
	f.ShEntSize = armelf.SectionHeaderSize
	f.ShStrNdx = uint16(shstrtabIdx)
	for i := range headers {
		data = append(data, headers[i].Encode(o)...)
	}

	copy(data, f.EncodeHeader())
	for i := range progs {
		copy(data[armelf.HeaderSize+i*armelf.ProgramHeaderSize:], progs[i].Encode(o))
	}

	return data
}

// Reader builds the file and returns it as a bytes.Reader.
func (obj Object) Reader() *bytes.Reader {
	return bytes.NewReader(obj.Bytes())
}
