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

package relocation

import "github.com/picoelf/armlink/curated"

func location(t Type, loc []byte) (field, error) {
	f, ok := t.field()
	if !ok {
		return field{}, curated.Errorf(Unsupported, t)
	}
	if len(loc) < f.width {
		return field{}, curated.Errorf(ShortField, t, f.width, len(loc))
	}
	return f, nil
}

// Addend decodes the implicit addend stored at the location. Used for SHT_REL
// entries. The types that patch nothing have an addend of zero.
func Addend(t Type, loc []byte, o order) (uint32, error) {
	switch t {
	case NONE, V4BX:
		return 0, nil
	}
	f, err := location(t, loc)
	if err != nil {
		return 0, err
	}
	return f.decode(loc, o), nil
}

// Apply encodes the value into the location. Bits of the location that are
// not part of the relocated field are preserved. For unsupported types the
// location is left unchanged and an error is returned.
func Apply(t Type, loc []byte, o order, value uint32) error {
	switch t {
	case NONE, V4BX:
		return nil
	}
	f, err := location(t, loc)
	if err != nil {
		return err
	}
	f.encode(loc, o, value)
	return nil
}
