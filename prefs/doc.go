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

// Package prefs holds typed preference values. Each value can have a hook
// that is called before and after the value is updated. A hook returning an
// error prevents (pre) or reports (post) the update.
//
// Values can be set from Go values or from strings. String conversion means
// that preferences can be read from the environment or from the command line
// preference stack without the caller knowing the type of the value.
//
// The command line preference stack is a list of groups of key/value pairs.
// A group is pushed with PushCommandLineStack() with a string of the form:
//
//	key::value; key::value
//
// Values in the most recent group are consumed with GetCommandLinePref() or
// applied to a preference value with ApplyCommandLinePref().
package prefs
