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
)

// EncodeHeader serialises the file header. The result is the 52 bytes of an
// ELF32 header.
func (f *File) EncodeHeader() []byte {
	b := make([]byte, HeaderSize)
	copy(b, elf.ELFMAG)
	b[elf.EI_CLASS] = byte(f.Class)
	b[elf.EI_DATA] = byte(f.Data)
	b[elf.EI_VERSION] = byte(f.Version)
	b[elf.EI_OSABI] = byte(f.OSABI)
	b[elf.EI_ABIVERSION] = f.ABIVersion

	o := f.order()
	o.PutUint16(b[16:], uint16(f.Type))
	o.PutUint16(b[18:], uint16(f.Machine))
	o.PutUint32(b[20:], f.ObjVersion)
	o.PutUint32(b[24:], f.Entry)
	o.PutUint32(b[28:], f.PhOff)
	o.PutUint32(b[32:], f.ShOff)
	o.PutUint32(b[36:], f.Flags)
	o.PutUint16(b[40:], f.EhSize)
	o.PutUint16(b[42:], f.PhEntSize)
	o.PutUint16(b[44:], f.PhNum)
	o.PutUint16(b[46:], f.ShEntSize)
	o.PutUint16(b[48:], f.ShNum)
	o.PutUint16(b[50:], f.ShStrNdx)

	return b
}

// order returns the byte order of the file. the byte order is derived from the
// data field if it has not been set.
func (f *File) order() binary.ByteOrder {
	if f.ByteOrder != nil {
		return f.ByteOrder
	}
	if f.Data == elf.ELFDATA2MSB {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Encode serialises the program header.
func (p *ProgramHeader) Encode(o binary.ByteOrder) []byte {
	b := make([]byte, ProgramHeaderSize)
	for i, w := range []uint32{uint32(p.Type), p.Offset, p.Vaddr, p.Paddr, p.Filesz, p.Memsz, uint32(p.Flags), p.Align} {
		o.PutUint32(b[i*4:], w)
	}
	return b
}

// Encode serialises the section header.
func (s *SectionHeader) Encode(o binary.ByteOrder) []byte {
	b := make([]byte, SectionHeaderSize)
	for i, w := range []uint32{s.NameOffset, uint32(s.Type), uint32(s.Flags), s.Addr, s.Offset, s.Size, s.Link, s.Info, s.Addralign, s.Entsize} {
		o.PutUint32(b[i*4:], w)
	}
	return b
}

// Encode serialises the symbol. The info byte is rebuilt from the Type and
// Bind fields.
func (s *Symbol) Encode(o binary.ByteOrder) []byte {
	b := make([]byte, SymbolSize)
	o.PutUint32(b[0:], s.NameOffset)
	o.PutUint32(b[4:], s.Value)
	o.PutUint32(b[8:], s.Size)
	b[12] = elf.ST_INFO(s.Bind, s.Type)
	b[13] = s.Other
	o.PutUint16(b[14:], uint16(s.RawSection))
	return b
}

// EncodeRel serialises a relocation entry. If rela is true the addend is
// included.
func EncodeRel(o binary.ByteOrder, offset uint32, symbol uint32, typ uint32, addend int32, rela bool) []byte {
	n := RelSize
	if rela {
		n = RelaSize
	}
	b := make([]byte, n)
	o.PutUint32(b[0:], offset)
	o.PutUint32(b[4:], elf.R_INFO32(symbol, typ))
	if rela {
		o.PutUint32(b[8:], uint32(addend))
	}
	return b
}
