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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/memory"
	"github.com/picoelf/armlink/modalflag"
	"github.com/picoelf/armlink/prefs"
	"github.com/picoelf/armlink/statsview"
	"github.com/picoelf/armlink/terminal/easyterm"
	"github.com/picoelf/armlink/version"
	"github.com/xyproto/env/v2"
)

// exit values returned by launch().
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the arguments and runs the selected mode. Returns the value
// to be used with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("INFO", "LINK", "LOAD", "VERSION")

	log := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	prefsArgs := md.AddString("prefs", "", "linker preferences (eg. \"strict::true; entry::main\")")
	model := md.AddEnvString("model", "ARMLINK_MODEL", string(memory.RP2040), fmt.Sprintf("target memory model: %s", modelList()))
	useMmap := md.AddBool("mmap", false, "allocate target memory with mmap")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if *log {
		if f, ok := output.(*os.File); ok && easyterm.IsTerminal(f) {
			logger.SetEcho(logger.NewColorizer(output), false)
		} else {
			logger.SetEcho(output, false)
		}
		defer logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(output)
		} else {
			fmt.Fprintln(output, "* statsview not available in this build")
		}
	}

	prefs.PushCommandLineStack(*prefsArgs)
	defer prefs.PopCommandLineStack()

	tgt, err := newTarget(*model, *useMmap)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "INFO":
		err = info(md)
	case "LINK":
		err = link(md, tgt)
	case "LOAD":
		err = load(md, tgt)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return exitOK
}

func modelList() string {
	s := make([]string, len(memory.Models))
	for i, m := range memory.Models {
		s[i] = string(m)
	}
	return strings.Join(s, ", ")
}

// target is the region of target memory that links and loads are placed in.
type target struct {
	mmap    memory.Map
	backing memory.Backing
	origin  prefs.Uint32
	size    prefs.Uint32
}

// newTarget uses the load region of the memory model. The environment can
// override the region.
func newTarget(model string, useMmap bool) (*target, error) {
	mmap, err := memory.NewMap(memory.Model(model))
	if err != nil {
		return nil, err
	}

	tgt := &target{
		mmap:    mmap,
		backing: memory.HeapBacking{},
	}
	if useMmap {
		tgt.backing = memory.MmapBacking{}
	}

	origin, size := mmap.LoadRegion()
	tgt.origin.Set(origin)
	tgt.size.Set(size)

	if env.Has("ARMLINK_ORIGIN") {
		if err := tgt.origin.Set(env.Str("ARMLINK_ORIGIN")); err != nil {
			return nil, fmt.Errorf("ARMLINK_ORIGIN: %w", err)
		}
	}
	if env.Has("ARMLINK_SIZE") {
		if err := tgt.size.Set(env.Str("ARMLINK_SIZE")); err != nil {
			return nil, fmt.Errorf("ARMLINK_SIZE: %w", err)
		}
	}

	return tgt, nil
}

// addFlags adds the -origin and -size flags to the current mode.
func (tgt *target) addFlags(md *modalflag.Modes) {
	md.AddVar(prefs.Flag(&tgt.origin), "origin", "origin of target memory")
	md.AddVar(prefs.Flag(&tgt.size), "size", "size of target memory")
}

func (tgt *target) arena() *memory.Arena {
	return memory.NewArena(tgt.origin.Value(), tgt.size.Value(), tgt.backing)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system (if available)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		fmt.Fprintln(md.Output, version.String())
	} else {
		v, _, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	}

	return nil
}
