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
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/ianlancetaylor/demangle"

	armelf "github.com/picoelf/armlink/elf"
	"github.com/picoelf/armlink/linker"
	"github.com/picoelf/armlink/loader"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/modalflag"
	"github.com/picoelf/armlink/prefs"
	"github.com/picoelf/armlink/provider"
)

// openELF interprets the named file with its symbols. The returned file
// should be closed by the caller when the interpreted file is no longer
// needed.
func openELF(filename string) (*armelf.File, *os.File, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	f, err := armelf.Interpret(fd, true)
	if err != nil {
		fd.Close()
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, fd, nil
}

// symbolName returns the name in a form suitable for display.
func symbolName(name string, raw bool) string {
	if raw {
		return name
	}
	return demangle.Filter(name)
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	symbols := md.AddBool("symbols", true, "list symbols")
	raw := md.AddBool("raw", false, "do not demangle C++ symbol names")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	files, err := md.Args("ELF file", 1, -1)
	if err != nil {
		return err
	}

	for _, fn := range files {
		f, fd, err := openELF(fn)
		if err != nil {
			return err
		}
		fd.Close()

		w := md.Output
		fmt.Fprintf(w, "%s: %s\n", fn, f)

		for _, p := range f.Progs {
			fmt.Fprintf(w, "  %s\n", p)
		}
		for _, s := range f.Sections {
			if s.Index == 0 {
				continue // for loop
			}
			fmt.Fprintf(w, "  %s\n", s)
		}

		if *symbols {
			for _, s := range f.Symbols {
				if s.Name == "" {
					continue // for loop
				}
				sec := "UND"
				switch {
				case s.Absolute():
					sec = "ABS"
				case !s.Undefined():
					sec = f.Sections[s.Section].Name
				}
				fmt.Fprintf(w, "  %08x %6d %-7s %-6s %-10s %s\n", s.Value, s.Size,
					symType(s.Type), symBind(s.Bind), sec, symbolName(s.Name, *raw))
			}
		}
	}

	return nil
}

func symType(t elf.SymType) string {
	switch t {
	case elf.STT_NOTYPE:
		return "NOTYPE"
	case elf.STT_OBJECT:
		return "OBJECT"
	case elf.STT_FUNC:
		return "FUNC"
	case elf.STT_SECTION:
		return "SECTION"
	case elf.STT_FILE:
		return "FILE"
	}
	return fmt.Sprintf("%d", t)
}

func symBind(b elf.SymBind) string {
	switch b {
	case elf.STB_LOCAL:
		return "LOCAL"
	case elf.STB_GLOBAL:
		return "GLOBAL"
	case elf.STB_WEAK:
		return "WEAK"
	}
	return fmt.Sprintf("%d", b)
}

// providers builds the provider chain from the files named by the LINK mode
// flags. Empty filenames are ignored.
func providers(tableFile string, mapFile string, firmwareFile string) (provider.Chain, error) {
	var chain provider.Chain

	readWith := func(filename string, read func(io.Reader) (*provider.Table, error)) error {
		fd, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer fd.Close()
		t, err := read(fd)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		logger.Logf(logger.Allow, "armlink", "%d symbols from %s", t.Len(), filename)
		chain = append(chain, t)
		return nil
	}

	if tableFile != "" {
		if err := readWith(tableFile, provider.ReadTable); err != nil {
			return nil, err
		}
	}
	if mapFile != "" {
		if err := readWith(mapFile, provider.FromMapFile); err != nil {
			return nil, err
		}
	}
	if firmwareFile != "" {
		f, fd, err := openELF(firmwareFile)
		if err != nil {
			return nil, err
		}
		fd.Close()
		t := provider.FromELF(f)
		logger.Logf(logger.Allow, "armlink", "%d symbols from %s", t.Len(), firmwareFile)
		chain = append(chain, t)
	}

	return chain, nil
}

func link(md *modalflag.Modes, tgt *target) error {
	md.NewMode()

	tableFile := md.AddString("providers", "", "symbol table file (name address per line)")
	mapFile := md.AddString("map", "", "gcc map file of the firmware")
	firmwareFile := md.AddString("firmware", "", "ELF image of the firmware")
	out := md.AddString("out", "", "write linked memory to file")
	exports := md.AddString("exports", "", "write exported symbols to file as a symbol table")
	viz := md.AddString("memviz", "", "write memviz graph of the linkage to file")
	raw := md.AddBool("raw", false, "do not demangle C++ symbol names")
	tgt.addFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	files, err := md.Args("object file", 1, -1)
	if err != nil {
		return err
	}

	chain, err := providers(*tableFile, *mapFile, *firmwareFile)
	if err != nil {
		return err
	}

	var inputs []linker.Input
	for _, fn := range files {
		f, fd, err := openELF(fn)
		if err != nil {
			return err
		}
		defer fd.Close()
		inputs = append(inputs, linker.Input{Name: fn, File: f, Stream: fd})
	}

	lnkPrefs, err := linker.NewPreferences()
	if err != nil {
		return err
	}

	lnk, err := linker.Link(inputs, chain, tgt.arena(), lnkPrefs)
	if err != nil {
		return err
	}
	defer lnk.Release()

	w := md.Output
	fmt.Fprintln(w, lnk)
	for _, rec := range lnk.Records {
		for i := range rec.Sections {
			ls := &rec.Sections[i]
			if !ls.Load {
				continue // for loop
			}
			h := rec.Header(ls)
			fmt.Fprintf(w, "  %08x %6d %-12s %s\n", ls.Address, h.Size, h.Name, rec.Name)
		}
	}
	for _, warn := range lnk.Warnings {
		fmt.Fprintf(w, "* warning: %v\n", warn)
	}
	if entry, ok := lnk.Entry(); ok {
		fmt.Fprintf(w, "entry %08x\n", entry)
	}
	for _, e := range lnk.Exports() {
		fmt.Fprintf(w, "  %08x %s\n", e.Address, symbolName(e.Name, *raw))
	}

	if *out != "" {
		if err := os.WriteFile(*out, lnk.Block.Data, 0o644); err != nil {
			return err
		}
	}

	if *exports != "" {
		t, err := provider.NewTable(lnk.Exports()...)
		if err != nil {
			return err
		}
		if err := writeFile(*exports, t.Write); err != nil {
			return err
		}
	}

	if *viz != "" {
		g := graphOf(lnk)
		err := writeFile(*viz, func(w io.Writer) error {
			memviz.Map(w, &g)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func load(md *modalflag.Modes, tgt *target) error {
	md.NewMode()

	abiFile := md.AddString("abi", "", "ABI table file used to fix the import table")
	var ptrtab prefs.Uint32
	md.AddVar(prefs.Flag(&ptrtab), "ptrtab", "address of the import table (default is the origin)")
	out := md.AddString("out", "", "write loaded memory to file")
	tgt.addFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	files, err := md.Args("executable", 1, 1)
	if err != nil {
		return err
	}

	f, fd, err := openELF(files[0])
	if err != nil {
		return err
	}
	defer fd.Close()

	img, err := loader.Load(fd, f, tgt.arena(), tgt.origin.Value(), tgt.size.Value())
	if err != nil {
		return err
	}
	defer img.Release()
	img.Log(logger.Allow)

	if *abiFile != "" {
		abi, err := providers(*abiFile, "", "")
		if err != nil {
			return err
		}
		if err := loader.FixImports(img, ptrtab.Value(), abi); err != nil {
			return err
		}
	}

	fmt.Fprintln(md.Output, img)

	if *out != "" {
		if err := os.WriteFile(*out, img.Memory(), 0o644); err != nil {
			return err
		}
	}

	return nil
}

// writeFile creates the named file and writes to it with the function.
func writeFile(filename string, write func(io.Writer) error) error {
	fd, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(fd); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// the memviz graph is a summary of the linkage. the block contents are not
// included.
type graphSection struct {
	Name    string
	Address uint32
	Size    uint32
}

type graphRecord struct {
	Name     string
	Sections []graphSection
	Linked   []string
}

type graph struct {
	Origin   uint32
	GOT      uint32
	GOTSize  uint32
	Records  []graphRecord
	Warnings []string
}

func graphOf(lnk *linker.Linkage) graph {
	g := graph{
		Origin:  lnk.Origin(),
		GOT:     lnk.GOT,
		GOTSize: lnk.GOTSize,
	}
	for _, rec := range lnk.Records {
		gr := graphRecord{Name: rec.Name}
		for i := range rec.Sections {
			ls := &rec.Sections[i]
			if ls.Load {
				h := rec.Header(ls)
				gr.Sections = append(gr.Sections, graphSection{Name: h.Name, Address: ls.Address, Size: h.Size})
			}
		}
		for i := range rec.Symbols {
			ls := &rec.Symbols[i]
			if ls.Linked {
				gr.Linked = append(gr.Linked, rec.Symbol(ls).Name)
			}
		}
		g.Records = append(g.Records, gr)
	}
	for _, w := range lnk.Warnings {
		g.Warnings = append(g.Warnings, w.Error())
	}
	return g
}
