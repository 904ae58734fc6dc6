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

package logger_test

import (
	"testing"

	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/terminal/easyterm/ansi"
	"github.com/picoelf/armlink/test"
)

func TestColorizer(t *testing.T) {
	tw := &test.CompareWriter{}
	c := logger.NewColorizer(tw)

	log := logger.NewLogger(10)
	log.SetEcho(c, false)

	log.Log(logger.Allow, "ELF", "unsupported relocation")
	test.ExpectEquality(t, tw.String(), ansi.BoldPen+"ELF:"+ansi.NormalPen+" "+ansi.DimPens["yellow"]+"unsupported relocation"+ansi.NormalPen+"\n")

	tw.Clear()
	c.Write([]byte("no tag here\n"))
	test.ExpectEquality(t, tw.String(), "no tag here\n")
}
