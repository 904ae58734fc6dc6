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
	"strings"

	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/memory"
	"github.com/picoelf/armlink/provider"
)

// Linkage is the result of a successful link.
type Linkage struct {
	Records []*Record

	// the block containing the GOT and all loaded sections
	Block *memory.Block

	// address and size of the GOT. the GOT is at the start of the block
	GOT     uint32
	GOTSize uint32

	// problems that did not stop the link. each warning is of type Warning
	Warnings []error

	prefs     *Preferences
	alloc     memory.Allocator
	providers provider.Provider
}

func (lnk *Linkage) String() string {
	var s strings.Builder
	if lnk.Block == nil {
		s.WriteString("released linkage")
	} else {
		s.WriteString(fmt.Sprintf("linkage %s", lnk.Block))
	}
	s.WriteString(fmt.Sprintf(" GOT %08x (%d entries)", lnk.GOT, lnk.GOTSize/gotEntrySize))
	return s.String()
}

// Release the block owned by the linkage. Addresses returned by the linkage
// are meaningless after the block has been released.
func (lnk *Linkage) Release() error {
	if lnk.Block == nil {
		return nil
	}
	err := lnk.alloc.Free(lnk.Block)
	lnk.Block = nil
	return err
}

// Origin returns the address of the start of the block.
func (lnk *Linkage) Origin() uint32 {
	if lnk.Block == nil {
		return 0
	}
	return lnk.Block.Origin
}

// Size returns the size of the block.
func (lnk *Linkage) Size() uint32 {
	if lnk.Block == nil {
		return 0
	}
	return lnk.Block.Size()
}

// find returns the first defined symbol with the name that is accepted by
// the filter.
func (lnk *Linkage) find(name string, filter func(ls *LoadedSymbol, s *armelf.Symbol) bool) (uint32, bool) {
	if name == "" {
		return 0, false
	}
	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			s := rec.Symbol(ls)
			if s.Name != name || s.Undefined() {
				continue // for loop
			}
			if filter == nil || filter(ls, s) {
				return ls.Address, true
			}
		}
	}
	return 0, false
}

// Lookup returns the address of the first defined symbol with the name.
func (lnk *Linkage) Lookup(name string) (uint32, bool) {
	return lnk.find(name, nil)
}

// AddressOf returns the address of the first defined symbol with the name
// that is a data object (if allowObject is true) or a function (if
// allowFunction is true).
func (lnk *Linkage) AddressOf(name string, allowObject bool, allowFunction bool) (uint32, bool) {
	return lnk.find(name, func(_ *LoadedSymbol, s *armelf.Symbol) bool {
		return (allowObject && s.Type == elf.STT_OBJECT) || (allowFunction && s.Type == elf.STT_FUNC)
	})
}

// Resolve implements the provider.Provider interface. Only symbols visible to
// other objects and placed in a loaded section are resolved.
func (lnk *Linkage) Resolve(name string) (uint32, bool) {
	return lnk.find(name, func(ls *LoadedSymbol, s *armelf.Symbol) bool {
		return s.Exported() && !ls.Unplaced
	})
}

// Section returns the header and address of the first loaded section with
// the name.
func (lnk *Linkage) Section(name string) (*armelf.SectionHeader, uint32, bool) {
	for _, rec := range lnk.Records {
		for i := range rec.Sections {
			ls := &rec.Sections[i]
			h := rec.Header(ls)
			if ls.Load && h.Name == name {
				return h, ls.Address, true
			}
		}
	}
	return nil, 0, false
}

// Entry returns the address of the first of the named functions that is
// defined. With no names the EntrySymbol preference is used.
func (lnk *Linkage) Entry(names ...string) (uint32, bool) {
	if len(names) == 0 {
		names = []string{lnk.prefs.EntrySymbol.String()}
	}
	for _, n := range names {
		if a, ok := lnk.AddressOf(n, false, true); ok {
			return a, true
		}
	}
	return 0, false
}

// Exports returns the symbols visible to other objects, in record and symbol
// order. Only the first definition of a name is included.
func (lnk *Linkage) Exports() []provider.Entry {
	var ex []provider.Entry
	seen := make(map[string]bool)
	for _, rec := range lnk.Records {
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			s := rec.Symbol(ls)
			if !s.Exported() || ls.Unplaced || seen[s.Name] {
				continue // for loop
			}
			seen[s.Name] = true
			ex = append(ex, provider.Entry{Name: s.Name, Address: ls.Address})
		}
	}
	return ex
}

// Log writes the layout of the linkage to the central logger.
func (lnk *Linkage) Log(perm logger.Permission) {
	logger.Log(perm, logTag, lnk)
	for _, rec := range lnk.Records {
		for i := range rec.Sections {
			ls := &rec.Sections[i]
			if ls.Load {
				h := rec.Header(ls)
				logger.Logf(perm, logTag, "%s: %s %08x to %08x", rec.Name, h.Name, ls.Address, ls.Address+h.Size)
			}
		}
	}
	for _, w := range lnk.Warnings {
		logger.Logf(perm, logTag, "warning: %v", w)
	}
}
