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

package curated

import (
	"fmt"
	"strings"
)

// curatedError is the error type returned by Errorf(). The pattern identifies
// the error and the values are only formatted when Error() is called.
type curatedError struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. The pattern is a format string but it
// is also the identity of the error, for use with Is() and Has(). Patterns
// are normally declared as constants by the package that returns them.
func Errorf(pattern string, values ...any) error {
	return curatedError{
		pattern: pattern,
		values:  values,
	}
}

// Error implements the error interface. When a curated error wraps another
// error with the same prefix, for example "linker: linker: unresolved
// symbol", the repeated prefix is removed.
func (er curatedError) Error() string {
	s := fmt.Sprintf(er.pattern, er.values...)
	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		p = p[1:]
	}
	return strings.Join(p, ": ")
}

// Unwrap returns the first error in the values. errors.Is() and errors.As()
// can see through a curated error to the error it wraps.
func (er curatedError) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny returns true if the error is a curated error.
func IsAny(err error) bool {
	_, ok := err.(curatedError)
	return ok
}

// Is returns true if the error is a curated error with the pattern. Wrapped
// errors are not examined. Use Has() for that.
func Is(err error, pattern string) bool {
	if er, ok := err.(curatedError); ok {
		return er.pattern == pattern
	}
	return false
}

// Has returns true if the pattern is found anywhere in the error chain. The
// chain is every error among the values of a curated error and anything that
// can be unwrapped with an Unwrap() method, including joined errors.
func Has(err error, pattern string) bool {
	switch er := err.(type) {
	case nil:
		return false
	case curatedError:
		if er.pattern == pattern {
			return true
		}
		for _, v := range er.values {
			if e, ok := v.(error); ok && Has(e, pattern) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return Has(er.Unwrap(), pattern)
	case interface{ Unwrap() []error }:
		for _, e := range er.Unwrap() {
			if Has(e, pattern) {
				return true
			}
		}
	}
	return false
}

// Pattern returns the pattern of a curated error or the empty string.
func Pattern(err error) string {
	if er, ok := err.(curatedError); ok {
		return er.pattern
	}
	return ""
}
