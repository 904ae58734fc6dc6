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

package linker

import (
	"fmt"
	"strings"

	"github.com/picoelf/armlink/prefs"
	"github.com/xyproto/env/v2"
)

// default values for the linker preferences.
const (
	DefaultEntrySymbol = "main"
	DefaultGOTSymbol   = "_GLOBAL_OFFSET_TABLE_"
)

// Preferences control the behaviour of the linker. Preferences implement the
// logger.Permission interface so that logging from the linker can be
// silenced with the Quiet preference.
type Preferences struct {
	// unsupported relocation types are a link failure rather than a warning
	Strict prefs.Bool

	// undefined weak symbols with no definition resolve to zero
	AllowUnresolvedWeak prefs.Bool

	// reserve a GOT entry for every symbol. if false, GOT entries are only
	// reserved for symbols referred to by a GOT relocation
	ReserveAllGOT prefs.Bool

	// name of the function used by Linkage.Entry()
	EntrySymbol prefs.String

	// name of the symbol that refers to the GOT itself
	GOTSymbol prefs.String

	// suppress logging
	Quiet prefs.Bool
}

// environment variables and command line preference keys. the command line
// key is used with the prefs command line stack
var preferenceKeys = []struct {
	env string
	key string
	get func(p *Preferences) prefs.Setter
}{
	{env: "ARMLINK_STRICT", key: "strict", get: func(p *Preferences) prefs.Setter { return &p.Strict }},
	{env: "ARMLINK_WEAK", key: "weak", get: func(p *Preferences) prefs.Setter { return &p.AllowUnresolvedWeak }},
	{env: "ARMLINK_ALL_GOT", key: "allgot", get: func(p *Preferences) prefs.Setter { return &p.ReserveAllGOT }},
	{env: "ARMLINK_ENTRY", key: "entry", get: func(p *Preferences) prefs.Setter { return &p.EntrySymbol }},
	{env: "ARMLINK_GOT", key: "got", get: func(p *Preferences) prefs.Setter { return &p.GOTSymbol }},
	{env: "ARMLINK_QUIET", key: "quiet", get: func(p *Preferences) prefs.Setter { return &p.Quiet }},
}

// DefaultPreferences returns preferences with the default values. The
// environment and the command line are not consulted.
func DefaultPreferences() *Preferences {
	p := &Preferences{}
	p.EntrySymbol.SetHookPre(requireName)
	p.GOTSymbol.SetHookPre(requireName)
	p.SetDefaults()
	return p
}

// symbol name preferences cannot be empty.
func requireName(v prefs.Value) error {
	if s, ok := v.(string); !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("symbol name cannot be empty")
	}
	return nil
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Defaults are overridden by the environment and then by
// the current group of the prefs command line stack.
func NewPreferences() (*Preferences, error) {
	p := DefaultPreferences()

	for _, k := range preferenceKeys {
		if !env.Has(k.env) {
			continue // for loop
		}

		var err error
		switch v := k.get(p).(type) {
		case *prefs.Bool:
			err = v.Set(env.Bool(k.env))
		default:
			err = v.Set(env.Str(k.env))
		}
		if err != nil {
			return nil, fmt.Errorf("linker: %s: %w", k.env, err)
		}
	}

	for _, k := range preferenceKeys {
		if _, err := prefs.ApplyCommandLinePref(k.key, k.get(p)); err != nil {
			return nil, fmt.Errorf("linker: %w", err)
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Strict.Set(false)
	p.AllowUnresolvedWeak.Set(false)
	p.ReserveAllGOT.Set(true)
	p.EntrySymbol.Set(DefaultEntrySymbol)
	p.GOTSymbol.Set(DefaultGOTSymbol)
	p.Quiet.Set(false)
}

// AllowLogging implements the logger.Permission interface.
func (p *Preferences) AllowLogging() bool {
	return !p.Quiet.Value()
}

func (p *Preferences) String() string {
	var s strings.Builder
	for i, k := range preferenceKeys {
		if i > 0 {
			s.WriteString("; ")
		}
		s.WriteString(fmt.Sprintf("%s::%s", k.key, k.get(p)))
	}
	return s.String()
}
