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
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/reader"
)

// wrap a reader error in the appropriate elf error.
func wrap(err error) error {
	if curated.Is(err, reader.StreamError) || curated.Is(err, reader.SeekError) {
		return curated.Errorf(IOFailure, err)
	}
	return curated.Errorf(MalformedInput, err)
}

// Interpret the ELF32 file in the stream. If withSymbols is true then the
// symbol table and its string table are also interpreted. A file without a
// symbol table is not an error.
func Interpret(r io.ReadSeeker, withSymbols bool) (*File, error) {
	rd := reader.New(r)
	f := &File{}

	if err := f.header(rd); err != nil {
		return nil, err
	}
	if err := f.programHeaders(rd); err != nil {
		return nil, err
	}
	if err := f.sectionHeaders(rd); err != nil {
		return nil, err
	}
	if withSymbols {
		if err := f.symbols(rd); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *File) header(rd *reader.Reader) error {
	if err := rd.Seek(0); err != nil {
		return wrap(err)
	}

	if err := rd.Expect([]byte(elf.ELFMAG)); err != nil {
		return wrap(err)
	}

	var ident [elf.EI_NIDENT - 4]byte
	if err := rd.ReadFull(ident[:]); err != nil {
		return wrap(err)
	}

	// ident bytes are offset by the four magic bytes
	f.Class = elf.Class(ident[elf.EI_CLASS-4])
	f.Data = elf.Data(ident[elf.EI_DATA-4])
	f.Version = elf.Version(ident[elf.EI_VERSION-4])
	f.OSABI = elf.OSABI(ident[elf.EI_OSABI-4])
	f.ABIVersion = ident[elf.EI_ABIVERSION-4]

	if f.Class != elf.ELFCLASS32 {
		return curated.Errorf(MalformedInput, fmt.Sprintf("unsupported class (%s)", f.Class))
	}

	switch f.Data {
	case elf.ELFDATA2LSB:
		f.ByteOrder = binary.LittleEndian
	case elf.ELFDATA2MSB:
		f.ByteOrder = binary.BigEndian
	default:
		return curated.Errorf(MalformedInput, fmt.Sprintf("unknown data encoding (%d)", f.Data))
	}
	rd.SetByteOrder(f.ByteOrder)

	var h struct {
		Type      uint16
		Machine   uint16
		Version   uint32
		Entry     uint32
		PhOff     uint32
		ShOff     uint32
		Flags     uint32
		EhSize    uint16
		PhEntSize uint16
		PhNum     uint16
		ShEntSize uint16
		ShNum     uint16
		ShStrNdx  uint16
	}

	b := make([]byte, HeaderSize-elf.EI_NIDENT)
	if err := rd.ReadFull(b); err != nil {
		return wrap(err)
	}
	if err := binary.Read(bytes.NewReader(b), f.ByteOrder, &h); err != nil {
		return curated.Errorf(MalformedInput, err)
	}

	f.Type = elf.Type(h.Type)
	f.Machine = elf.Machine(h.Machine)
	f.ObjVersion = h.Version
	f.Entry = h.Entry
	f.PhOff = h.PhOff
	f.ShOff = h.ShOff
	f.Flags = h.Flags
	f.EhSize = h.EhSize
	f.PhEntSize = h.PhEntSize
	f.PhNum = h.PhNum
	f.ShEntSize = h.ShEntSize
	f.ShNum = h.ShNum
	f.ShStrNdx = h.ShStrNdx

	if f.PhNum > 0 && f.PhEntSize < ProgramHeaderSize {
		return curated.Errorf(MalformedInput, fmt.Sprintf("program header entry size too small (%d)", f.PhEntSize))
	}
	if f.ShNum > 0 && f.ShEntSize < SectionHeaderSize {
		return curated.Errorf(MalformedInput, fmt.Sprintf("section header entry size too small (%d)", f.ShEntSize))
	}

	return nil
}

// readWords reads n consecutive 32 bit words at the offset.
func readWords(rd *reader.Reader, offset int64, n int) ([]uint32, error) {
	if err := rd.Seek(offset); err != nil {
		return nil, err
	}
	w := make([]uint32, n)
	for i := range w {
		v, err := rd.Uint32()
		if err != nil {
			return nil, err
		}
		w[i] = v
	}
	return w, nil
}

func (f *File) programHeaders(rd *reader.Reader) error {
	f.Progs = make([]ProgramHeader, f.PhNum)

	// entries are located by index and entry size. they need not be
	// contiguous
	for i := range f.Progs {
		w, err := readWords(rd, int64(f.PhOff)+int64(i)*int64(f.PhEntSize), 8)
		if err != nil {
			return wrap(err)
		}
		f.Progs[i] = ProgramHeader{
			Type:   elf.ProgType(w[0]),
			Offset: w[1],
			Vaddr:  w[2],
			Paddr:  w[3],
			Filesz: w[4],
			Memsz:  w[5],
			Flags:  elf.ProgFlag(w[6]),
			Align:  w[7],
		}
	}

	return nil
}

func (f *File) sectionHeaders(rd *reader.Reader) error {
	f.Sections = make([]SectionHeader, f.ShNum)

	for i := range f.Sections {
		w, err := readWords(rd, int64(f.ShOff)+int64(i)*int64(f.ShEntSize), 10)
		if err != nil {
			return wrap(err)
		}
		f.Sections[i] = SectionHeader{
			Index:      i,
			NameOffset: w[0],
			Type:       elf.SectionType(w[1]),
			Flags:      elf.SectionFlag(w[2]),
			Addr:       w[3],
			Offset:     w[4],
			Size:       w[5],
			Link:       w[6],
			Info:       w[7],
			Addralign:  w[8],
			Entsize:    w[9],
		}
	}

	// no section names
	if f.ShStrNdx == uint16(elf.SHN_UNDEF) || f.ShNum == 0 {
		return nil
	}

	if int(f.ShStrNdx) >= len(f.Sections) {
		return curated.Errorf(BoundsViolation, fmt.Sprintf("section name index (%d) beyond section count (%d)", f.ShStrNdx, f.ShNum))
	}

	names, err := f.readSection(rd, &f.Sections[f.ShStrNdx])
	if err != nil {
		return err
	}

	for i := range f.Sections {
		s := &f.Sections[i]
		s.Name, err = stringAt(names, s.NameOffset)
		if err != nil {
			return curated.Errorf(BoundsViolation, fmt.Sprintf("section %d: %v", i, err))
		}
	}

	return nil
}

func (f *File) symbols(rd *reader.Reader) error {
	symtab := f.FindSection(".symtab")
	if symtab == nil {
		for i := range f.Sections {
			if f.Sections[i].Type == elf.SHT_SYMTAB {
				symtab = &f.Sections[i]
				break // for loop
			}
		}
	}

	// not having a symbol table is not an error
	if symtab == nil {
		return nil
	}

	if symtab.Type != elf.SHT_SYMTAB {
		return curated.Errorf(MalformedInput, fmt.Sprintf("%s is not a symbol table (%s)", symtab.Name, symtab.Type))
	}
	if symtab.Entsize < SymbolSize {
		return curated.Errorf(MalformedInput, fmt.Sprintf("symbol entry size too small (%d)", symtab.Entsize))
	}
	if int(symtab.Link) >= len(f.Sections) {
		return curated.Errorf(BoundsViolation, fmt.Sprintf("symbol string table index (%d) beyond section count (%d)", symtab.Link, f.ShNum))
	}

	strtab := &f.Sections[symtab.Link]
	if strtab.Type != elf.SHT_STRTAB {
		return curated.Errorf(MalformedInput, fmt.Sprintf("%s is not a string table (%s)", strtab.Name, strtab.Type))
	}

	strs, err := f.readSection(rd, strtab)
	if err != nil {
		return err
	}

	if err := inStream(rd, symtab.Name, symtab.Offset, symtab.Size); err != nil {
		return err
	}

	f.Symbols = make([]Symbol, symtab.Size/symtab.Entsize)

	for i := range f.Symbols {
		if err := rd.Seek(int64(symtab.Offset) + int64(i)*int64(symtab.Entsize)); err != nil {
			return wrap(err)
		}

		b := make([]byte, SymbolSize)
		if err := rd.ReadFull(b); err != nil {
			return wrap(err)
		}

		sym := &f.Symbols[i]
		sym.Index = i
		sym.NameOffset = f.ByteOrder.Uint32(b[0:])
		sym.Value = f.ByteOrder.Uint32(b[4:])
		sym.Size = f.ByteOrder.Uint32(b[8:])
		sym.Info = b[12]
		sym.Other = b[13]
		sym.RawSection = elf.SectionIndex(f.ByteOrder.Uint16(b[14:]))
		sym.Type = elf.ST_TYPE(sym.Info)
		sym.Bind = elf.ST_BIND(sym.Info)

		if int(sym.RawSection) < len(f.Sections) {
			sym.Section = int(sym.RawSection)
		}

		sym.Name, err = stringAt(strs, sym.NameOffset)
		if err != nil {
			return curated.Errorf(BoundsViolation, fmt.Sprintf("symbol %d: %v", i, err))
		}
	}

	f.SymbolTable = symtab.Index

	return nil
}

// inStream checks that size bytes at offset lie within the stream. sizes come
// straight from the file and must be checked before anything is allocated.
func inStream(rd *reader.Reader, what string, offset uint32, size uint32) error {
	end, err := rd.Size()
	if err != nil {
		return wrap(err)
	}
	if int64(offset)+int64(size) > end {
		return curated.Errorf(MalformedInput, fmt.Sprintf("%s (%08x bytes at %08x) extends beyond end of file (%08x)", what, size, offset, end))
	}
	return nil
}

// readSection returns the file bytes of the section.
func (f *File) readSection(rd *reader.Reader, s *SectionHeader) ([]byte, error) {
	if s.Type == elf.SHT_NOBITS {
		return make([]byte, s.Size), nil
	}
	if err := inStream(rd, fmt.Sprintf("section %d", s.Index), s.Offset, s.Size); err != nil {
		return nil, err
	}
	b := make([]byte, s.Size)
	if err := rd.Seek(int64(s.Offset)); err != nil {
		return nil, wrap(err)
	}
	if err := rd.ReadFull(b); err != nil {
		return nil, wrap(err)
	}
	return b, nil
}

// stringAt returns the NUL terminated string at the offset. the string is
// cut short by the end of the buffer if there is no terminating NUL.
func stringAt(buf []byte, offset uint32) (string, error) {
	if int64(offset) > int64(len(buf)) {
		return "", fmt.Errorf("string offset (%d) beyond end of string table (%d)", offset, len(buf))
	}
	b := buf[offset:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}
