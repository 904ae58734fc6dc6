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

package linker

import (
	"debug/elf"
	"fmt"
	"io"

	"github.com/picoelf/armlink/curated"
	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/relocation"
)

// Input is a single object to be linked. The stream must be the one that the
// file was interpreted from. The file must have been interpreted with its
// symbols.
type Input struct {
	Name   string
	File   *armelf.File
	Stream io.ReadSeeker
}

// LoadedSection is the load state of one section. The section header is
// referenced by its index in the File.
type LoadedSection struct {
	Index int

	// absolute address of the section. only meaningful if Load is true
	Address uint32

	// section occupies memory in the linked block
	Load bool
}

// LoadedSymbol is the load state of one symbol. The symbol is referenced by
// its index in the File.
type LoadedSymbol struct {
	Index int

	// resolved absolute address of the symbol
	Address uint32

	// address of the symbol's GOT entry. only meaningful if InGOT is true
	GOT   uint32
	InGOT bool

	// symbol was undefined and has been resolved by the cross-object linker
	Linked bool

	// symbol is defined in a section that is not loaded. the address is the
	// raw symbol value and is never offered to other objects
	Unplaced bool
}

// relocationEntry is one entry from a SHT_REL or SHT_RELA section.
type relocationEntry struct {
	// index of the section being relocated
	section int

	// index of the relocation section the entry came from
	source int

	offset uint32
	symbol int
	typ    relocation.Type

	// explicit addend. only used if rela is true
	addend uint32
	rela   bool
}

// Record is the load state of one object in a linkage. The sections and
// symbols mirror those of the interpreted File.
type Record struct {
	Name     string
	File     *armelf.File
	Sections []LoadedSection
	Symbols  []LoadedSymbol

	stream      io.ReadSeeker
	relocations []relocationEntry
}

func (rec *Record) String() string {
	return fmt.Sprintf("%s: %d sections, %d symbols, %d relocations", rec.Name, len(rec.Sections), len(rec.Symbols), len(rec.relocations))
}

// Header returns the section header of the loaded section.
func (rec *Record) Header(s *LoadedSection) *armelf.SectionHeader {
	return &rec.File.Sections[s.Index]
}

// Symbol returns the symbol table entry of the loaded symbol.
func (rec *Record) Symbol(s *LoadedSymbol) *armelf.Symbol {
	return &rec.File.Symbols[s.Index]
}

// BE8 code is little-endian while data is big-endian. only BE32 big-endian
// objects are supported.
const efARMBE8 = 0x00800000

// newRecord creates the Record for an input. The relocation sections are read
// immediately.
func newRecord(in Input) (*Record, error) {
	if in.File == nil || in.Stream == nil {
		return nil, curated.Errorf(Unacceptable, in.Name, "no file or stream")
	}
	f := in.File

	if f.Type != elf.ET_REL {
		return nil, curated.Errorf(Unacceptable, in.Name, fmt.Sprintf("not a relocatable object (%s)", f.Type))
	}
	if f.Machine != elf.EM_ARM {
		return nil, curated.Errorf(Unacceptable, in.Name, fmt.Sprintf("not an ARM object (%s)", f.Machine))
	}
	if f.SymbolTable == 0 {
		return nil, curated.Errorf(Unacceptable, in.Name, "no symbols")
	}
	if f.Flags&efARMBE8 == efARMBE8 {
		return nil, curated.Errorf(Unacceptable, in.Name, "BE8 byte order")
	}

	rec := &Record{
		Name:     in.Name,
		File:     f,
		Sections: make([]LoadedSection, len(f.Sections)),
		Symbols:  make([]LoadedSymbol, len(f.Symbols)),
		stream:   in.Stream,
	}

	for i := range f.Sections {
		h := &f.Sections[i]
		rec.Sections[i] = LoadedSection{
			Index: i,
			Load:  h.Alloc() && h.Size > 0,
		}
	}

	for i := range f.Symbols {
		rec.Symbols[i] = LoadedSymbol{
			Index: i,
		}
	}

	for i := range f.Sections {
		h := &f.Sections[i]
		if h.Type != elf.SHT_REL && h.Type != elf.SHT_RELA {
			continue // for loop
		}
		if err := rec.readRelocations(h); err != nil {
			return nil, curated.Errorf(Unacceptable, in.Name, err)
		}
	}

	return rec, nil
}

// readRelocations reads the entries of a relocation section.
func (rec *Record) readRelocations(h *armelf.SectionHeader) error {
	rela := h.Type == elf.SHT_RELA

	// relocations that refer to a symbol table other than the one we have
	// read cannot be processed
	if int(h.Link) != rec.File.SymbolTable {
		return curated.Errorf(armelf.MalformedInput, fmt.Sprintf("%s refers to symbol table %d", h.Name, h.Link))
	}

	target, err := rec.File.Section(int(h.Info))
	if err != nil {
		return err
	}

	entsize := h.Entsize
	minsize := uint32(armelf.RelSize)
	if rela {
		minsize = armelf.RelaSize
	}
	if entsize < minsize {
		entsize = minsize
	}

	if h.Size > 0 && entsize > h.Size {
		return curated.Errorf(armelf.MalformedInput, fmt.Sprintf("%s entry size (%d) larger than section (%d)", h.Name, entsize, h.Size))
	}

	data, err := rec.File.SectionData(rec.stream, h)
	if err != nil {
		return err
	}

	o := rec.File.ByteOrder
	step := int(entsize)
	for i := 0; i+int(minsize) <= len(data); i += step {
		e := data[i:]
		info := o.Uint32(e[4:])
		r := relocationEntry{
			section: target.Index,
			source:  h.Index,
			offset:  o.Uint32(e),
			symbol:  int(info >> 8),
			typ:     relocation.Type(info & 0xff),
			rela:    rela,
		}
		if rela {
			r.addend = o.Uint32(e[8:])
		}

		if _, err := rec.File.Symbol(r.symbol); err != nil {
			return err
		}

		rec.relocations = append(rec.relocations, r)
	}

	return nil
}
