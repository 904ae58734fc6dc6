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

package main

import (
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/picoelf/armlink/elf/elftest"
	"github.com/picoelf/armlink/provider"
	"github.com/picoelf/armlink/relocation"
	"github.com/picoelf/armlink/test"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func object() []byte {
	return elftest.Object{
		Sections: []elftest.Section{
			{
				Name: ".text", Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Align: 4,
				Data: []byte{0x00, 0xf0, 0x00, 0xf8, 0x70, 0x47, 0x00, 0xbf},
				Relocations: []elftest.Relocation{
					{Offset: 0, Symbol: "callback", Type: relocation.THM_CALL},
				},
			},
			{Name: ".data", Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Align: 4, Data: make([]byte, 8)},
		},
		Symbols: []elftest.Symbol{
			{Name: "callback", Type: elf.STT_FUNC, Bind: elf.STB_GLOBAL},
			{Name: "main", Value: 1, Section: ".text", Type: elf.STT_FUNC, Bind: elf.STB_GLOBAL},
			{Name: "_ZN5state5countE", Value: 4, Section: ".data", Type: elf.STT_OBJECT, Bind: elf.STB_GLOBAL},
		},
	}.Bytes()
}

func TestVersion(t *testing.T) {
	var out test.CompareWriter
	test.ExpectEquality(t, launch([]string{"VERSION"}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "armlink "))
}

func TestBadArguments(t *testing.T) {
	var out test.CompareWriter
	test.ExpectEquality(t, launch([]string{"-nosuchflag", "INFO"}, &out), exitParseError)
	test.ExpectEquality(t, launch([]string{"-model", "VCS", "VERSION"}, &out), exitParseError)
	test.ExpectEquality(t, launch([]string{"INFO"}, &out), exitModeError)
	test.ExpectEquality(t, launch([]string{"LOAD", "a", "b"}, &out), exitModeError)
}

func TestInfo(t *testing.T) {
	fn := writeTemp(t, "obj.o", object())

	var out test.CompareWriter
	test.DemandEquality(t, launch([]string{"INFO", fn}, &out), exitOK)
	s := out.String()
	test.ExpectSuccess(t, strings.Contains(s, ".text"))
	test.ExpectSuccess(t, strings.Contains(s, ".rel.text"))
	test.ExpectSuccess(t, strings.Contains(s, "callback"))

	// names are demangled unless -raw is given
	test.ExpectSuccess(t, strings.Contains(s, "state::count"))

	out.Clear()
	test.DemandEquality(t, launch([]string{"INFO", "-raw", fn}, &out), exitOK)
	test.ExpectSuccess(t, out.Contains("_ZN5state5countE"))
}

func TestLink(t *testing.T) {
	fn := writeTemp(t, "obj.o", object())
	table := writeTemp(t, "firmware.txt", []byte("# firmware\ncallback 0x20000101\n"))
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out.bin")
	exportsFile := filepath.Join(dir, "exports.txt")
	vizFile := filepath.Join(dir, "linkage.dot")

	var out test.CompareWriter
	test.DemandEquality(t, launch([]string{
		"LINK", "-providers", table,
		"-out", outFile, "-exports", exportsFile, "-memviz", vizFile,
		"-origin", "0x20030000", "-size", "0x1000",
		fn,
	}, &out), exitOK, out.String())

	test.ExpectSuccess(t, out.Contains("entry 2003"))

	// the GOT is followed by .text. the branch to callback has been written
	bin, err := os.ReadFile(outFile)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, len(bin) > 20)

	fd, err := os.Open(exportsFile)
	test.DemandSuccess(t, err)
	defer fd.Close()
	ex, err := provider.ReadTable(fd)
	test.DemandSuccess(t, err)
	entry, ok := ex.Resolve("main")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, entry&1, uint32(1))
	_, ok = ex.Resolve("callback")
	test.ExpectFailure(t, ok)

	viz, err := os.ReadFile(vizFile)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(viz), "digraph"))

	// no providers
	out.Clear()
	test.ExpectEquality(t, launch([]string{"LINK", fn}, &out), exitModeError)
	test.ExpectSuccess(t, out.Contains("unresolved symbol: callback"))

	// the preferences stack changes the entry symbol
	out.Clear()
	test.DemandEquality(t, launch([]string{"-prefs", "entry::nothing", "LINK", "-providers", table, fn}, &out), exitOK)
	test.ExpectFailure(t, out.Contains("entry "))
}

func TestLoad(t *testing.T) {
	mem := make([]byte, 16)
	binary.LittleEndian.PutUint32(mem, 0x20030008)
	copy(mem[8:], "printf\x00")

	fn := writeTemp(t, "prog.elf", elftest.Object{
		Type:     elf.ET_EXEC,
		Entry:    0x20030011,
		Segments: []elftest.Segment{{Vaddr: 0x20030000, Data: mem, Memsz: 0x20}},
	}.Bytes())
	abi := writeTemp(t, "abi.txt", []byte("printf 0x10001001\n"))
	outFile := filepath.Join(t.TempDir(), "out.bin")

	var out test.CompareWriter
	test.DemandEquality(t, launch([]string{"LOAD", "-abi", abi, "-size", "0x100", "-out", outFile, fn}, &out), exitOK, out.String())
	test.ExpectSuccess(t, out.Contains("entry 20030011"))

	bin, err := os.ReadFile(outFile)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(bin), 0x100)
	test.ExpectEquality(t, binary.LittleEndian.Uint32(bin), uint32(0x10001001))

	// unknown import
	bad := writeTemp(t, "abi.txt", []byte("puts 0x10001001\n"))
	out.Clear()
	test.ExpectEquality(t, launch([]string{"LOAD", "-abi", bad, "-size", "0x100", fn}, &out), exitModeError)
	test.ExpectSuccess(t, out.Contains("printf not found"))
}

func TestTarget(t *testing.T) {
	tgt, err := newTarget("RP2040", false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tgt.origin.Value(), uint32(0x20030000))
	test.ExpectEquality(t, tgt.size.Value(), uint32(0x10000))

	t.Setenv("ARMLINK_ORIGIN", "0x20000000")
	t.Setenv("ARMLINK_SIZE", "4096")
	tgt, err = newTarget("RP2040", true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tgt.origin.Value(), uint32(0x20000000))
	test.ExpectEquality(t, tgt.size.Value(), uint32(4096))

	arena := tgt.arena()
	b, err := arena.Allocate(64, 4)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Origin, uint32(0x20000000))
	test.ExpectSuccess(t, arena.Free(b))

	t.Setenv("ARMLINK_SIZE", "lots")
	_, err = newTarget("RP2040", false)
	test.ExpectFailure(t, err)
}
