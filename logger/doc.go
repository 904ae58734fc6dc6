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

// Package logger is the central log for the library and the command line
// tool. Entries are tagged and repeated entries are folded into one.
//
// Logging requests carry a Permission. A Permission that returns false from
// AllowLogging() causes the request to be dropped. This allows a caller (for
// example a quiet link) to suppress diagnostics without threading a flag
// through every function.
//
// The central log is bounded. The oldest entries are dropped when the bound is
// reached.
package logger
