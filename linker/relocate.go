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

	"github.com/picoelf/armlink/curated"
	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/relocation"
)

// Warning is a problem with a relocation entry that did not stop the link.
type Warning struct {
	Object  string
	Section string
	Offset  uint32
	Symbol  string
	Err     error
}

func (w Warning) Error() string {
	if w.Symbol == "" {
		return fmt.Sprintf("%s: %s+%#x: %v", w.Object, w.Section, w.Offset, w.Err)
	}
	return fmt.Sprintf("%s: %s+%#x (%s): %v", w.Object, w.Section, w.Offset, w.Symbol, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// relocate applies every relocation entry of every record. Entries are
// processed in the order of their relocation sections and then in the order
// they appear in the section.
func (lnk *Linkage) relocate() error {
	for _, rec := range lnk.Records {
		for _, r := range rec.relocations {
			if err := lnk.apply(rec, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (lnk *Linkage) apply(rec *Record, r relocationEntry) error {
	sec := &rec.Sections[r.section]
	h := rec.Header(sec)
	ls := &rec.Symbols[r.symbol]
	s := rec.Symbol(ls)

	if !sec.Load {
		logger.Logf(lnk.prefs, logTag, "%s: %s+%#x: %s skipped (section not loaded)", rec.Name, h.Name, r.offset, r.typ)
		return nil
	}

	if !r.typ.Supported() {
		w := Warning{
			Object:  rec.Name,
			Section: h.Name,
			Offset:  r.offset,
			Symbol:  s.Name,
			Err:     curated.Errorf(relocation.Unsupported, r.typ),
		}
		if lnk.prefs.Strict.Value() {
			return curated.Errorf(LinkFailed, w)
		}
		lnk.Warnings = append(lnk.Warnings, w)
		logger.Log(lnk.prefs, logTag, w)
		return nil
	}

	width := uint32(relocation.Width(r.typ))
	if uint64(r.offset)+uint64(width) > uint64(h.Size) {
		return curated.Errorf(armelf.BoundsViolation, fmt.Sprintf("%s: relocation offset %#x beyond end of %s (%d bytes)", rec.Name, r.offset, h.Name, h.Size))
	}

	P := sec.Address + r.offset
	loc, err := lnk.Block.Slice(P, width)
	if err != nil {
		return curated.Errorf(LinkFailed, err)
	}

	v := relocation.Values{
		S:         ls.Address,
		P:         P,
		GOTOrigin: lnk.GOT,
	}

	// Thumb functions have the low bit of their address set
	if s.Type == elf.STT_FUNC && ls.Address&1 == 1 {
		v.T = 1
	}

	if relocation.UsesGOT(r.typ) {
		if !ls.InGOT {
			return curated.Errorf(LinkFailed, fmt.Sprintf("%s: %s has no GOT entry", rec.Name, s.Name))
		}
		v.GOTEntry = ls.GOT
	}

	o := rec.File.ByteOrder
	if r.rela {
		v.A = r.addend
	} else {
		v.A, err = relocation.Addend(r.typ, loc, o)
		if err != nil {
			return curated.Errorf(LinkFailed, err)
		}
	}

	value, err := relocation.Evaluate(r.typ, v)
	if err != nil {
		return curated.Errorf(LinkFailed, err)
	}

	err = relocation.Apply(r.typ, loc, o, value)
	if err != nil {
		return curated.Errorf(LinkFailed, err)
	}

	return nil
}
