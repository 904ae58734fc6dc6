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

package provider

// Provider is implemented by any type that can resolve a symbol name to a
// target address.
type Provider interface {
	Resolve(name string) (uint32, bool)
}

// Chain is an ordered list of providers. The first provider to resolve a
// name is used.
type Chain []Provider

// Resolve implements the Provider interface.
func (c Chain) Resolve(name string) (uint32, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if a, ok := p.Resolve(name); ok {
			return a, true
		}
	}
	return 0, false
}

// Func adapts a function to the Provider interface.
type Func func(name string) (uint32, bool)

// Resolve implements the Provider interface.
func (f Func) Resolve(name string) (uint32, bool) {
	return f(name)
}
