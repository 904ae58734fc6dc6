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

package memory

// Backing provides the host memory for blocks. Memory returned by Acquire()
// is zeroed.
type Backing interface {
	Acquire(size uint32) ([]byte, error)
	Release(data []byte) error
}

// HeapBacking allocates block memory from the Go heap.
type HeapBacking struct{}

// Acquire implements the Backing interface.
func (HeapBacking) Acquire(size uint32) ([]byte, error) {
	return make([]byte, size), nil
}

// Release implements the Backing interface. The memory is left to the garbage
// collector.
func (HeapBacking) Release(data []byte) error {
	return nil
}
