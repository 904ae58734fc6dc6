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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and Parse() is
// called with no arguments. This allows the same argument list to be parsed
// in stages, one stage per mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("INFO", "LINK", "LOAD", "VERSION")
//	logging := md.AddBool("log", false, "echo log to stdout")
//	p, err := md.Parse()
//
// After a successful Parse() the Mode() function returns the selected
// sub-mode. The first sub-mode in the list is the default. Sub-mode
// comparisons are case insensitive.
//
// The mode is then processed by calling NewMode(), adding the flags for that
// mode and calling Parse() again:
//
//	switch md.Mode() {
//	case "LINK":
//		md.NewMode()
//		out := md.AddString("out", "", "write linked block to file")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseHelp:
//			return nil
//		case modalflag.ParseError:
//			return err
//		}
//		files := md.RemainingArgs()
//	}
//
// Help messages are printed to the Output writer automatically. A Parse()
// result of ParseHelp means the help has already been printed.
package modalflag
