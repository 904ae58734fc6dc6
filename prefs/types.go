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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value is the Go value of a preference as given to Set() or returned by
// Get().
type Value any

// Setter is implemented by all preference types.
type Setter interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are common to all preference types.
type hooks struct {
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

// SetHookPre sets a function to be called with the new value before it is
// stored. An error from the function prevents the value being stored. The
// function is called even if the value has not changed.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.hookPre = f
}

// SetHookPost sets a function to be called with the new value after it has
// been stored.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.hookPost = f
}

// typed is the storage shared by the preference types. The zero value holds
// the zero value of T. Preferences can be read and written from different
// goroutines.
type typed[T any] struct {
	hooks
	value atomic.Value
}

func (p *typed[T]) load() T {
	if v := p.value.Load(); v != nil {
		return v.(T)
	}
	var zero T
	return zero
}

func (p *typed[T]) store(v T) error {
	if p.hookPre != nil {
		if err := p.hookPre(v); err != nil {
			return err
		}
	}
	p.value.Store(v)
	if p.hookPost != nil {
		return p.hookPost(v)
	}
	return nil
}

// Bool is a boolean preference.
type Bool struct {
	typed[bool]
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.load())
}

// Set accepts a bool or a string. The strings "true", "yes", "on" and "1"
// (in any case) are true and any other string is false.
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return p.store(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return p.store(true)
		}
		return p.store(false)
	}
	return fmt.Errorf("prefs: cannot set Bool from %T", v)
}

// Get returns the value as a Value.
func (p *Bool) Get() Value {
	return p.load()
}

// Value returns the value as a bool.
func (p *Bool) Value() bool {
	return p.load()
}

// Reset sets the value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String is a string preference.
type String struct {
	typed[string]
}

func (p *String) String() string {
	return p.load()
}

// Set accepts any value. Values other than strings are formatted with the %v
// verb.
func (p *String) Set(v Value) error {
	if s, ok := v.(string); ok {
		return p.store(s)
	}
	return p.store(fmt.Sprintf("%v", v))
}

// Get returns the value as a Value.
func (p *String) Get() Value {
	return p.load()
}

// Reset sets the value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Uint32 is a preference for a 32 bit address or size. Strings are parsed
// with base prefixes so "0x20030000" is accepted.
type Uint32 struct {
	typed[uint32]
}

func (p *Uint32) String() string {
	return fmt.Sprintf("0x%08x", p.load())
}

// Set accepts a uint32, a non-negative int or a string.
func (p *Uint32) Set(v Value) error {
	switch v := v.(type) {
	case uint32:
		return p.store(v)
	case int:
		if v < 0 || uint64(v) > 0xffffffff {
			return fmt.Errorf("prefs: %d out of range for Uint32", v)
		}
		return p.store(uint32(v))
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(v), 0, 32)
		if err != nil {
			return fmt.Errorf("prefs: cannot set Uint32 from %q: %w", v, err)
		}
		return p.store(uint32(u))
	}
	return fmt.Errorf("prefs: cannot set Uint32 from %T", v)
}

// Get returns the value as a Value.
func (p *Uint32) Get() Value {
	return p.load()
}

// Value returns the value as a uint32.
func (p *Uint32) Value() uint32 {
	return p.load()
}

// Reset sets the value to zero.
func (p *Uint32) Reset() error {
	return p.Set(uint32(0))
}
