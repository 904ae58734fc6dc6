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

package elf_test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/picoelf/armlink/curated"
	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/elf/elftest"
	"github.com/picoelf/armlink/reader"
	"github.com/picoelf/armlink/test"
)

func quantum() elftest.Object {
	return elftest.Object{
		Sections: []elftest.Section{
			{Name: ".text", Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Align: 4, Data: make([]byte, 16)},
			{Name: ".data", Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Align: 8, Data: make([]byte, 200)},
			{Name: ".bss", Type: elf.SHT_NOBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Align: 4, Size: 64},
			{Name: ".comment", Data: []byte("gcc\x00")},
		},
		Symbols: []elftest.Symbol{
			{Name: "local", Section: ".text", Type: elf.STT_FUNC, Bind: elf.STB_LOCAL},
			{Name: "quantum", Value: 123, Section: ".data", Type: elf.STT_OBJECT, Bind: elf.STB_GLOBAL},
			{Name: "version", Value: 0x0102, Section: elftest.Abs, Type: elf.STT_NOTYPE, Bind: elf.STB_GLOBAL},
			{Name: "callback", Type: elf.STT_FUNC, Bind: elf.STB_GLOBAL},
		},
	}
}

func TestInterpret(t *testing.T) {
	r := quantum().Reader()
	f, err := armelf.Interpret(r, true)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Class, elf.ELFCLASS32)
	test.ExpectEquality(t, f.Type, elf.ET_REL)
	test.ExpectEquality(t, f.Machine, elf.EM_ARM)
	test.ExpectEquality(t, len(f.Sections), int(f.ShNum))
	test.ExpectEquality(t, len(f.Progs), int(f.PhNum))

	text := f.FindSection(".text")
	test.DemandSuccess(t, text != nil)
	test.ExpectSuccess(t, text.Alloc())
	test.ExpectEquality(t, text.Size, 16)

	comment := f.FindSection(".comment")
	test.DemandSuccess(t, comment != nil)
	test.ExpectFailure(t, comment.Alloc())

	test.ExpectSuccess(t, f.FindSection(".rel.text") == nil)
	test.ExpectSuccess(t, f.FindSection(".shstrtab") != nil)

	// null symbol plus four
	test.ExpectEquality(t, len(f.Symbols), 5)

	q := f.FindSymbol("quantum")
	test.DemandSuccess(t, q != nil)
	test.ExpectEquality(t, q.Value, 123)
	test.ExpectEquality(t, q.Section, f.FindSection(".data").Index)
	test.ExpectEquality(t, q.Bind, elf.STB_GLOBAL)
	test.ExpectEquality(t, q.Type, elf.STT_OBJECT)
	test.ExpectSuccess(t, q.Exported())

	// absolute symbol is clamped to section zero but keeps its raw index
	v := f.FindSymbol("version")
	test.DemandSuccess(t, v != nil)
	test.ExpectEquality(t, v.Section, 0)
	test.ExpectEquality(t, v.RawSection, elf.SHN_ABS)
	test.ExpectSuccess(t, v.Absolute())
	test.ExpectFailure(t, v.Undefined())

	cb := f.FindSymbol("callback")
	test.DemandSuccess(t, cb != nil)
	test.ExpectSuccess(t, cb.Undefined())
	test.ExpectFailure(t, cb.Exported())

	test.ExpectSuccess(t, f.FindSymbol("") == nil)
	test.ExpectSuccess(t, f.FindSymbol("missing") == nil)

	data, err := f.SectionData(r, f.FindSection(".comment"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(data), "gcc\x00")

	bss, err := f.SectionData(r, f.FindSection(".bss"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(bss), 64)
}

func TestWithoutSymbols(t *testing.T) {
	f, err := armelf.Interpret(quantum().Reader(), false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(f.Symbols), 0)
	test.ExpectEquality(t, f.SymbolTable, 0)
	test.ExpectSuccess(t, f.FindSymbol("quantum") == nil)
}

func TestHeaderRoundTrip(t *testing.T) {
	b := quantum().Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), true)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, bytes.Equal(f.EncodeHeader(), b[:armelf.HeaderSize]))

	for i := range f.Sections {
		s := &f.Sections[i]
		o := int(f.ShOff) + i*int(f.ShEntSize)
		test.ExpectSuccess(t, bytes.Equal(s.Encode(f.ByteOrder), b[o:o+armelf.SectionHeaderSize]), s.Name)
	}

	symtab := &f.Sections[f.SymbolTable]
	for i := range f.Symbols {
		s := &f.Symbols[i]
		o := int(symtab.Offset) + i*int(symtab.Entsize)
		test.ExpectSuccess(t, bytes.Equal(s.Encode(f.ByteOrder), b[o:o+armelf.SymbolSize]), s.Name)
	}
}

func TestExecutable(t *testing.T) {
	obj := elftest.Object{
		Type:  elf.ET_EXEC,
		Entry: 0x20030001,
		Segments: []elftest.Segment{
			{Vaddr: 0x20030000, Data: []byte{1, 2, 3, 4}, Memsz: 16},
		},
	}
	b := obj.Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), true)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Type, elf.ET_EXEC)
	test.ExpectEquality(t, f.Entry, 0x20030001)
	test.DemandEquality(t, len(f.Progs), 1)
	test.ExpectEquality(t, f.Progs[0].Type, elf.PT_LOAD)
	test.ExpectEquality(t, f.Progs[0].Vaddr, 0x20030000)
	test.ExpectEquality(t, f.Progs[0].Filesz, 4)
	test.ExpectEquality(t, f.Progs[0].Memsz, 16)

	o := int(f.PhOff)
	test.ExpectSuccess(t, bytes.Equal(f.Progs[0].Encode(f.ByteOrder), b[o:o+armelf.ProgramHeaderSize]))
}

func TestBigEndian(t *testing.T) {
	obj := quantum()
	obj.ByteOrder = binary.BigEndian
	f, err := armelf.Interpret(obj.Reader(), true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Data, elf.ELFDATA2MSB)
	q := f.FindSymbol("quantum")
	test.DemandSuccess(t, q != nil)
	test.ExpectEquality(t, q.Value, 123)
}

func TestMalformed(t *testing.T) {
	b := quantum().Bytes()

	// bad magic
	bad := bytes.Clone(b)
	bad[1] = 'X'
	_, err := armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))
	test.ExpectSuccess(t, curated.Has(err, reader.BadMagic))

	// 64 bit class
	bad = bytes.Clone(b)
	bad[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// unknown data encoding
	bad = bytes.Clone(b)
	bad[elf.EI_DATA] = 3
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// truncated header
	_, err = armelf.Interpret(bytes.NewReader(b[:30]), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))
	test.ExpectSuccess(t, curated.Has(err, reader.TruncatedRead))

	// truncated section header table
	_, err = armelf.Interpret(bytes.NewReader(b[:len(b)-10]), true)
	test.ExpectSuccess(t, curated.Has(err, reader.TruncatedRead))

	// section header entry size too small
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint16(bad[46:], 20)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// section name table index out of range
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint16(bad[50:], 100)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.BoundsViolation))

	// empty stream
	_, err = armelf.Interpret(bytes.NewReader(nil), true)
	test.ExpectFailure(t, err)
}

// size fields that claim more bytes than the file holds must be rejected
// before anything is allocated
func TestOversized(t *testing.T) {
	b := quantum().Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), true)
	test.DemandSuccess(t, err)

	header := func(idx int) int {
		return int(f.ShOff) + idx*int(f.ShEntSize)
	}

	// symbol table size
	bad := bytes.Clone(b)
	binary.LittleEndian.PutUint32(bad[header(f.SymbolTable)+20:], 0xfffffff0)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// section name table size
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint32(bad[header(int(f.ShStrNdx))+20:], 0xffffffff)
	_, err = armelf.Interpret(bytes.NewReader(bad), false)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// section offset and size that together pass the end of the file
	data := f.FindSection(".data")
	test.DemandSuccess(t, data != nil)
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint32(bad[header(data.Index)+16:], 0xffffff00)
	g, err := armelf.Interpret(bytes.NewReader(bad), false)
	test.DemandSuccess(t, err)
	_, err = g.SectionData(bytes.NewReader(bad), g.FindSection(".data"))
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// a NOBITS section has no file bytes to check
	bss, err := g.SectionData(bytes.NewReader(bad), g.FindSection(".bss"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(bss), 64)
}

func TestOversizedSegment(t *testing.T) {
	obj := elftest.Object{
		Type: elf.ET_EXEC,
		Segments: []elftest.Segment{
			{Vaddr: 0x20030000, Data: []byte{1, 2, 3, 4}, Memsz: 16},
		},
	}
	b := obj.Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), false)
	test.DemandSuccess(t, err)

	binary.LittleEndian.PutUint32(b[int(f.PhOff)+16:], 0xfffffff0)
	f, err = armelf.Interpret(bytes.NewReader(b), false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Progs[0].Filesz, 0xfffffff0)

	_, err = f.SegmentData(bytes.NewReader(b), &f.Progs[0])
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))
}

func TestBadNameOffset(t *testing.T) {
	b := quantum().Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), false)
	test.DemandSuccess(t, err)

	// point the name of section one beyond the end of the names section
	o := int(f.ShOff) + 1*int(f.ShEntSize)
	binary.LittleEndian.PutUint32(b[o:], 0xffff)
	_, err = armelf.Interpret(bytes.NewReader(b), false)
	test.ExpectSuccess(t, curated.Is(err, armelf.BoundsViolation))
}

func TestBadSymbolTable(t *testing.T) {
	b := quantum().Bytes()
	f, err := armelf.Interpret(bytes.NewReader(b), true)
	test.DemandSuccess(t, err)

	// symbol table entry size
	bad := bytes.Clone(b)
	o := int(f.ShOff) + f.SymbolTable*int(f.ShEntSize)
	binary.LittleEndian.PutUint32(bad[o+36:], 8)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// the symbol table is not looked at if symbols are not requested
	_, err = armelf.Interpret(bytes.NewReader(bad), false)
	test.ExpectSuccess(t, err)

	// link to a section that isn't a string table
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint32(bad[o+24:], 1)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.MalformedInput))

	// link beyond the section count
	bad = bytes.Clone(b)
	binary.LittleEndian.PutUint32(bad[o+24:], 1000)
	_, err = armelf.Interpret(bytes.NewReader(bad), true)
	test.ExpectSuccess(t, curated.Is(err, armelf.BoundsViolation))
}

func TestLookupBounds(t *testing.T) {
	f, err := armelf.Interpret(quantum().Reader(), true)
	test.DemandSuccess(t, err)

	_, err = f.Section(len(f.Sections))
	test.ExpectSuccess(t, curated.Is(err, armelf.BoundsViolation))
	_, err = f.Symbol(-1)
	test.ExpectSuccess(t, curated.Is(err, armelf.BoundsViolation))

	s, err := f.Symbol(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.Name, "quantum")
}
