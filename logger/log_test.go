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
	"errors"
	"fmt"
	"testing"

	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/test"
)

type prohibit struct{}

func (_ prohibit) AllowLogging() bool {
	return false
}

func TestLogger(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(100)

	log.Write(tw)
	test.ExpectEquality(t, tw.Compare(""), true)

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(tw)
	test.ExpectEquality(t, tw.Compare("test: this is a test\n"), true)

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(tw)
	test.ExpectEquality(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	log.Tail(tw, 100)
	test.ExpectEquality(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	log.Tail(tw, 2)
	test.ExpectEquality(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for fewer entries is okay too
	tw.Clear()
	log.Tail(tw, 1)
	test.ExpectEquality(t, tw.Compare("test2: this is another test\n"), true)

	// and no entries
	tw.Clear()
	log.Tail(tw, 0)
	test.ExpectEquality(t, tw.Compare(""), true)

	// repeated entries are folded
	tw.Clear()
	log.Log(logger.Allow, "test2", "this is another test")
	log.Tail(tw, 1)
	test.ExpectEquality(t, tw.Compare("test2: this is another test (repeat x2)\n"), true)
}

func TestDetailTypes(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "ELF", errors.New("bad magic"))
	log.Log(logger.Allow, "ELF", 100)
	log.Logf(logger.Allow, "ELF", "section %s at %08x", ".text", 0x20030000)
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "ELF: bad magic\nELF: 100\nELF: section .text at 20030000\n")
}

func TestPermission(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(prohibit{}, "test", "this should not appear")
	log.Log(logger.Deny, "test", "nor should this")
	test.ExpectFailure(t, log.Write(tw))
	test.ExpectEquality(t, log.Len(), 0)
}

func TestBounds(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(3)

	for i := 0; i < 5; i++ {
		log.Log(logger.Allow, "n", fmt.Sprintf("%d", i))
	}
	test.ExpectEquality(t, log.Len(), 3)
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "n: 2\nn: 3\nn: 4\n")
}

func TestRecentAndEcho(t *testing.T) {
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "a", "one")

	recent := &test.CompareWriter{}
	log.WriteRecent(recent)
	test.ExpectEquality(t, recent.String(), "a: one\n")

	// nothing new since the last call
	recent.Clear()
	log.WriteRecent(recent)
	test.ExpectEquality(t, recent.String(), "")

	log.Log(logger.Allow, "a", "two")

	echo := &test.CompareWriter{}
	log.SetEcho(echo, true)
	log.Log(logger.Allow, "a", "three")
	test.ExpectEquality(t, echo.String(), "a: two\na: three\n")

	log.SetEcho(nil, false)
	log.Log(logger.Allow, "a", "four")
	test.ExpectEquality(t, echo.String(), "a: two\na: three\n")
}
