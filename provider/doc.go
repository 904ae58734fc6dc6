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

// Package provider supplies already resolved symbols to the linker and the
// import table fix-up. A provider maps a name to a target address.
//
// Providers can be read from a simple table file, from a gcc map file or from
// the symbol table of a firmware image. A completed linkage is also a
// provider, so that code linked earlier can be referenced by code linked
// later. Providers are composed with Chain, in which case the first provider
// to resolve a name wins.
package provider
