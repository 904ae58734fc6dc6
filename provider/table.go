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

package provider

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/picoelf/armlink/curated"
)

// Entry is a single name and address pair.
type Entry struct {
	Name    string
	Address uint32
}

func (e Entry) String() string {
	return fmt.Sprintf("%08x %s", e.Address, e.Name)
}

// Table is an ordered list of entries with an index by name. The zero value
// is an empty table ready for use.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates a table from the list of entries. Returns an error if a
// name appears more than once.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{}
	for _, e := range entries {
		if err := t.Add(e.Name, e.Address); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add an entry to the end of the table.
func (t *Table) Add(name string, address uint32) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[name]; ok {
		return curated.Errorf(Duplicate, name)
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Address: address})
	return nil
}

// Resolve implements the Provider interface.
func (t *Table) Resolve(name string) (uint32, bool) {
	if i, ok := t.index[name]; ok {
		return t.entries[i].Address, true
	}
	return 0, false
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in the order they were added.
func (t *Table) Entries() []Entry {
	return append([]Entry{}, t.entries...)
}

// Nearest returns the entry with the highest address that is not greater than
// the address. Entries are searched in table order, which for a table read
// from a map file is address order.
func (t *Table) Nearest(address uint32) (Entry, bool) {
	var found bool
	var n Entry
	for _, e := range t.entries {
		if e.Address <= address && (!found || e.Address >= n.Address) {
			n = e
			found = true
		}
	}
	return n, found
}

// ReadTable reads a table from a text stream. Each line is a name followed
// by an address. Addresses may use a base prefix (eg. 0x). Text following a
// # is a comment and blank lines are ignored.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{}

	scanner := bufio.NewScanner(r)
	var ln int
	for scanner.Scan() {
		ln++

		l := scanner.Text()
		if i := strings.IndexByte(l, '#'); i >= 0 {
			l = l[:i]
		}

		flds := strings.Fields(l)
		if len(flds) == 0 {
			continue // for loop
		}
		if len(flds) != 2 {
			return nil, curated.Errorf(BadTable, ln, "expected a name and an address")
		}

		a, err := strconv.ParseUint(flds[1], 0, 32)
		if err != nil {
			return nil, curated.Errorf(BadTable, ln, err)
		}

		if err := t.Add(flds[0], uint32(a)); err != nil {
			return nil, curated.Errorf(BadTable, ln, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(BadTable, ln, err)
	}

	return t, nil
}

// Write the table in the format accepted by ReadTable.
func (t *Table) Write(w io.Writer) error {
	for _, e := range t.entries {
		if _, err := fmt.Fprintf(w, "%s 0x%08x\n", e.Name, e.Address); err != nil {
			return err
		}
	}
	return nil
}
