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
	"github.com/picoelf/armlink/memory"
	"github.com/picoelf/armlink/provider"
)

const logTag = "linker"

// Link the inputs into a single block allocated from alloc. Undefined symbols
// that are not defined by another input are resolved by the providers. The
// providers value can be nil. If prefs is nil then the default preferences
// are used.
//
// The returned Linkage owns the block until Release() is called. On error no
// Linkage is returned and the block has been freed.
func Link(inputs []Input, providers provider.Provider, alloc memory.Allocator, prefs *Preferences) (*Linkage, error) {
	if alloc == nil {
		return nil, curated.Errorf(LinkFailed, "no allocator")
	}
	if len(inputs) == 0 {
		return nil, curated.Errorf(LinkFailed, "nothing to link")
	}
	if prefs == nil {
		prefs = DefaultPreferences()
	}

	lnk := &Linkage{
		prefs:     prefs,
		alloc:     alloc,
		providers: providers,
	}

	for _, in := range inputs {
		rec, err := newRecord(in)
		if err != nil {
			return nil, err
		}
		if len(lnk.Records) > 0 && rec.File.ByteOrder != lnk.Records[0].File.ByteOrder {
			return nil, curated.Errorf(Unacceptable, in.Name, "byte order differs from other objects")
		}
		lnk.Records = append(lnk.Records, rec)
		logger.Log(prefs, logTag, rec)
	}

	size, align, err := lnk.layout()
	if err != nil {
		return nil, err
	}

	lnk.Block, err = alloc.Allocate(size, align)
	if err != nil {
		return nil, curated.Errorf(LinkFailed, err)
	}

	err = lnk.complete()
	if err != nil {
		_ = alloc.Free(lnk.Block)
		lnk.Block = nil
		return nil, err
	}

	logger.Logf(prefs, logTag, "linked %d objects into %s", len(lnk.Records), lnk.Block)
	if len(lnk.Warnings) > 0 {
		logger.Logf(prefs, logTag, "%d warnings", len(lnk.Warnings))
	}

	return lnk, nil
}

// complete the link once the block has been allocated.
func (lnk *Linkage) complete() error {
	if err := lnk.place(); err != nil {
		return err
	}
	lnk.define()
	if err := lnk.link(); err != nil {
		return err
	}
	if err := lnk.fillGOT(); err != nil {
		return err
	}
	return lnk.relocate()
}

// needsLinking returns true if the symbol is an undefined reference that must
// be resolved by another object or by a provider.
func needsLinking(s *armelf.Symbol) bool {
	if !s.Undefined() || s.Name == "" {
		return false
	}
	if s.Bind != elf.STB_GLOBAL && s.Bind != elf.STB_WEAK {
		return false
	}
	switch s.Type {
	case elf.STT_NOTYPE, elf.STT_FUNC, elf.STT_OBJECT:
		return true
	}
	return false
}

// define sets the address of every symbol that is defined in its own file.
func (lnk *Linkage) define() {
	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			s := rec.Symbol(ls)

			switch {
			case s.Absolute():
				ls.Address = s.Value
			case s.Section != int(elf.SHN_UNDEF):
				sec := &rec.Sections[s.Section]
				if sec.Load {
					ls.Address = sec.Address + s.Value
				} else {
					ls.Address = s.Value
					ls.Unplaced = true
					if s.Exported() {
						logger.Logf(lnk.prefs, logTag, "%s: %s is in unloaded section %s and is not exported", rec.Name, s.Name, rec.Header(sec).Name)
					}
				}
			default:
				ls.Address = 0
			}
		}
	}
}

// sibling searches the other records for an exported definition of the name.
func (lnk *Linkage) sibling(exclude *Record, name string) (uint32, bool) {
	for _, rec := range lnk.Records {
		if rec == exclude {
			continue // for loop
		}
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			s := rec.Symbol(ls)
			if s.Name == name && s.Exported() && !needsLinking(s) && !ls.Unplaced {
				return ls.Address, true
			}
		}
	}
	return 0, false
}

// link resolves every symbol that needs linking.
func (lnk *Linkage) link() error {
	gotSymbol := lnk.prefs.GOTSymbol.String()

	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			s := rec.Symbol(ls)
			if !needsLinking(s) {
				continue // for loop
			}

			if s.Name == gotSymbol {
				ls.Address = lnk.GOT
				ls.Linked = true
				continue // for loop
			}

			if a, ok := lnk.sibling(rec, s.Name); ok {
				ls.Address = a
				ls.Linked = true
				logger.Logf(lnk.prefs, logTag, "%s: %s linked to %08x", rec.Name, s.Name, a)
				continue // for loop
			}

			if lnk.providers != nil {
				if a, ok := lnk.providers.Resolve(s.Name); ok {
					ls.Address = a
					ls.Linked = true
					logger.Logf(lnk.prefs, logTag, "%s: %s provided at %08x", rec.Name, s.Name, a)
					continue // for loop
				}
			}

			if s.Bind == elf.STB_WEAK && lnk.prefs.AllowUnresolvedWeak.Value() {
				ls.Address = 0
				ls.Linked = true
				logger.Logf(lnk.prefs, logTag, "%s: weak symbol %s is unresolved and is zero", rec.Name, s.Name)
				continue // for loop
			}

			return curated.Errorf(UnresolvedSymbol, s.Name, rec.Name)
		}
	}

	return nil
}

// fillGOT writes the address of each symbol with a GOT entry into the GOT.
func (lnk *Linkage) fillGOT() error {
	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			if !ls.InGOT {
				continue // for loop
			}
			slot, err := lnk.Block.Slice(ls.GOT, gotEntrySize)
			if err != nil {
				return curated.Errorf(LinkFailed, fmt.Errorf("GOT entry for %s: %w", rec.Symbol(ls).Name, err))
			}
			rec.File.ByteOrder.PutUint32(slot, ls.Address)
		}
	}
	return nil
}
