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

package test

import "strings"

// CompareWriter captures output so that it can be compared with expected
// text. The zero value is ready to use.
type CompareWriter struct {
	strings.Builder
}

// Clear discards the captured output.
func (tw *CompareWriter) Clear() {
	tw.Reset()
}

// Compare returns true if the captured output is exactly the string.
func (tw *CompareWriter) Compare(s string) bool {
	return tw.String() == s
}

// Contains returns true if the string appears anywhere in the captured
// output.
func (tw *CompareWriter) Contains(s string) bool {
	return strings.Contains(tw.String(), s)
}
