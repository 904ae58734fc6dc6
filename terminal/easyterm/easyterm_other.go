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

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package easyterm

import (
	"fmt"
	"os"
)

// TermGeometry contains the dimensions of a terminal.
type TermGeometry struct {
	// characters
	Rows uint16
	Cols uint16
}

// IsTerminal always returns false on platforms without termios.
func IsTerminal(f *os.File) bool {
	return false
}

// Geometry is not supported on platforms without termios.
func Geometry(f *os.File) (TermGeometry, error) {
	return TermGeometry{}, fmt.Errorf("easyterm: terminal geometry not supported")
}
