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
	"io"
	"strconv"
	"strings"

	"github.com/picoelf/armlink/curated"
)

// the line that begins the part of a map file that we're interested in.
const mapFileStart = "Linker script and memory map"

// FromMapFile creates a table from a gcc map file. Two forms of entry are
// recognised: the input sections of functions (.text.name) and symbol
// assignments (an address followed by a name). The first address found for a
// name is used.
func FromMapFile(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(BadMapFile, err)
	}
	lines := strings.Split(string(data), "\n")

	// find the start of mapfile that we're interested in. everything we skip
	// is of no interest or misleading
	for i, l := range lines {
		if strings.TrimSpace(l) == mapFileStart {
			lines = lines[i:]
			break // for loop
		}
	}

	t := &Table{}
	add := func(name string, flds string) error {
		address, err := strconv.ParseUint(flds, 0, 32)
		if err != nil {
			return curated.Errorf(BadMapFile, err)
		}
		if _, ok := t.Resolve(name); !ok {
			_ = t.Add(name, uint32(address))
		}
		return nil
	}

	var functionName string

	for _, l := range lines {
		flds := strings.Fields(l)
		if len(flds) == 0 {
			continue // for loop
		}

		// the input section of a function. the name is either on a line of its
		// own with the address on the following line or followed by the
		// address, size and object file
		if strings.HasPrefix(flds[0], ".text.") {
			functionName = flds[0][6:]
			if len(flds) >= 3 && isAddress(flds[1]) {
				if err := add(functionName, flds[1]); err != nil {
					return nil, err
				}
				functionName = ""
			}
			continue // for loop
		}

		if functionName != "" {
			if strings.HasSuffix(l, ".o") && isAddress(flds[0]) {
				if err := add(functionName, flds[0]); err != nil {
					return nil, err
				}
			}
			functionName = ""
		}

		// symbol assignment. lines created by linker script expressions
		// contain an = and are not symbol definitions
		if len(flds) == 2 && isAddress(flds[0]) && isSymbolName(flds[1]) {
			if err := add(flds[1], flds[0]); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func isAddress(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func isSymbolName(s string) bool {
	if strings.ContainsAny(s, "=()*.;") {
		return false
	}
	return !isAddress(s)
}
