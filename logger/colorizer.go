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

package logger

import (
	"io"
	"strings"

	"github.com/picoelf/armlink/terminal/easyterm/ansi"
)

// Colorizer applies basic coloring rules to logging output. Entries with the
// tag used for warnings are written with a dim yellow pen, errors with a dim
// red pen. Tags are written in bold.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		var m int

		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			m, err = io.WriteString(c.out, l+"\n")
			n += m
			if err != nil {
				return n, err
			}
			continue
		}

		pen := ansi.NormalPen
		lower := strings.ToLower(detail)
		switch {
		case strings.Contains(lower, "warning") || strings.Contains(lower, "unsupported"):
			pen = ansi.DimPens["yellow"]
		case strings.Contains(lower, "error") || strings.Contains(lower, "failed"):
			pen = ansi.DimPens["red"]
		}

		m, err = io.WriteString(c.out, ansi.BoldPen+tag+":"+ansi.NormalPen+" "+pen+detail+ansi.NormalPen+"\n")
		n += m
		if err != nil {
			return n, err
		}
	}

	return len(p), nil
}
