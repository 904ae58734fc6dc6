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

package prefs

import "flag"

// Flag wraps a preference value so that it can be used with the flag package.
func Flag(p Setter) flag.Value {
	return flagValue{p: p}
}

type flagValue struct {
	p Setter
}

func (f flagValue) String() string {
	if f.p == nil {
		return ""
	}
	return f.p.String()
}

func (f flagValue) Set(s string) error {
	return f.p.Set(s)
}
