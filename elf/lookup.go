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
	"fmt"
	"io"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/reader"
)

// FindSection returns the first section with the name. Returns nil if there
// is no such section.
func (f *File) FindSection(name string) *SectionHeader {
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i]
		}
	}
	return nil
}

// FindSymbol returns the first symbol with the name. Returns nil if there is
// no such symbol. The null symbol is never returned.
func (f *File) FindSymbol(name string) *Symbol {
	if name == "" {
		return nil
	}
	for i := range f.Symbols {
		if f.Symbols[i].Name == name {
			return &f.Symbols[i]
		}
	}
	return nil
}

// Section returns the section header at the index.
func (f *File) Section(idx int) (*SectionHeader, error) {
	if idx < 0 || idx >= len(f.Sections) {
		return nil, curated.Errorf(BoundsViolation, fmt.Sprintf("section index (%d) beyond section count (%d)", idx, len(f.Sections)))
	}
	return &f.Sections[idx], nil
}

// Symbol returns the symbol at the index.
func (f *File) Symbol(idx int) (*Symbol, error) {
	if idx < 0 || idx >= len(f.Symbols) {
		return nil, curated.Errorf(BoundsViolation, fmt.Sprintf("symbol index (%d) beyond symbol count (%d)", idx, len(f.Symbols)))
	}
	return &f.Symbols[idx], nil
}

// SectionData reads the file bytes of the section from the stream. The stream
// should be the one the File was interpreted from. A SHT_NOBITS section yields
// a zeroed slice of the declared size.
func (f *File) SectionData(r io.ReadSeeker, s *SectionHeader) ([]byte, error) {
	rd := reader.New(r)
	rd.SetByteOrder(f.ByteOrder)
	return f.readSection(rd, s)
}

// SegmentData reads the file bytes of the segment from the stream. The
// returned slice is Filesz bytes long.
func (f *File) SegmentData(r io.ReadSeeker, p *ProgramHeader) ([]byte, error) {
	rd := reader.New(r)
	rd.SetByteOrder(f.ByteOrder)
	if err := inStream(rd, "segment", p.Offset, p.Filesz); err != nil {
		return nil, err
	}
	b := make([]byte, p.Filesz)
	if err := rd.Seek(int64(p.Offset)); err != nil {
		return nil, wrap(err)
	}
	if err := rd.ReadFull(b); err != nil {
		return nil, wrap(err)
	}
	return b, nil
}
