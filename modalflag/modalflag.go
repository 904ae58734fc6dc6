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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/xyproto/env/v2"
)

// separates modes in the value returned by Path().
const modeSeparator = "/"

// Modes parses a command line in stages. Each stage has its own flags and
// may select a sub-mode for the next stage. Output must be set for help
// messages to be seen.
type Modes struct {
	Output io.Writer

	// Parse() has been called in this stage
	parsed bool

	// replaced at the start of every stage
	flags *flag.FlagSet

	// all arguments and the index of the first argument for the next stage
	args    []string
	argsIdx int

	// sub-modes for the current stage
	subModes []string

	// sub-modes selected by every stage so far
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the sub-mode selected by the most recent stage.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every sub-mode selected so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts the first stage.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode starts a new stage. Flags and sub-modes from the previous stage are
// forgotten.
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.subModes = md.subModes[:0]
	md.parsed = false
	md.additionalHelp = ""
}

// AdditionalHelp is printed after the flag and sub-mode help.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called in this stage.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// carry on. if there were sub-modes the selection is in Mode()
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// the error is returned as the second return value
	ParseError
)

// Parse the flags of the current stage and select a sub-mode. If the first
// argument after the flags is not a sub-mode then the first sub-mode is
// selected and the argument is left for the next stage.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.Help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			return ParseHelp, nil
		}
		return ParseError, err
	}

	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.argsIdx++
			break // for loop
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments after the flags and sub-mode of the
// most recent Parse().
func (md *Modes) RemainingArgs() []string {
	if md.argsIdx > len(md.args) {
		return []string{}
	}
	return md.args[md.argsIdx:]
}

// GetArg returns one of the remaining arguments or the empty string.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Args returns the remaining arguments if there are at least min of them and
// no more than max. A max less than zero means there is no upper limit. The
// what argument describes the arguments in the error message.
func (md *Modes) Args(what string, min int, max int) ([]string, error) {
	r := md.RemainingArgs()
	if len(r) < min {
		return nil, fmt.Errorf("%s required for %s mode", what, md)
	}
	if max >= 0 && len(r) > max {
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}
	return r, nil
}

// AddSubModes for the current stage. The first is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// AddBool flag to the current stage.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddString flag to the current stage.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddEnvString adds a string flag whose default is taken from the
// environment variable, if it is set.
func (md *Modes) AddEnvString(name string, envName string, value string, usage string) *string {
	return md.flags.String(name, env.Str(envName, value), fmt.Sprintf("%s (env %s)", usage, envName))
}

// AddVar adds a flag parsed by the flag.Value. See prefs.Flag().
func (md *Modes) AddVar(value flag.Value, name string, usage string) {
	md.flags.Var(value, name, usage)
}
