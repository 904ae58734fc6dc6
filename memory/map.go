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

import "fmt"

// Model identifies a target device.
type Model string

// List of valid Model values.
const (
	RP2040   Model = "RP2040"
	Harmony  Model = "Harmony"
	PlusCart Model = "PlusCart"
)

// Models lists all valid Model values.
var Models = []Model{RP2040, Harmony, PlusCart}

// Map of the memory of a target device.
type Map struct {
	Model Model

	FlashOrigin uint32
	FlashMemtop uint32

	SRAMOrigin uint32
	SRAMMemtop uint32

	// the region of SRAM that loaded code may occupy
	LoadOrigin uint32
	LoadMemtop uint32
}

// NewMap is the preferred method of initialisation for the Map type. An
// unknown model is an error.
func NewMap(model Model) (Map, error) {
	mmap := Map{Model: model}

	switch model {
	case RP2040:
		mmap.FlashOrigin = 0x10000000
		mmap.FlashMemtop = 0x101fffff
		mmap.SRAMOrigin = 0x20000000
		mmap.SRAMMemtop = 0x20041fff

		// the top of SRAM is used by the firmware. programs are loaded into
		// the 64k window below it
		mmap.LoadOrigin = 0x20030000
		mmap.LoadMemtop = 0x2003ffff

	case Harmony:
		mmap.FlashOrigin = 0x00000000
		mmap.FlashMemtop = 0x0fffffff
		mmap.SRAMOrigin = 0x40000000
		mmap.SRAMMemtop = 0x4fffffff
		mmap.LoadOrigin = 0x40000000
		mmap.LoadMemtop = 0x40007fff

	case PlusCart:
		mmap.FlashOrigin = 0x20000000
		mmap.FlashMemtop = 0x2fffffff
		mmap.SRAMOrigin = 0x10000000
		mmap.SRAMMemtop = 0x1fffffff
		mmap.LoadOrigin = 0x10000000
		mmap.LoadMemtop = 0x1000ffff

	default:
		return Map{}, fmt.Errorf("memory: unknown model (%s)", model)
	}

	return mmap, nil
}

// LoadRegion returns the origin and size of the region loaded code may
// occupy.
func (mmap Map) LoadRegion() (uint32, uint32) {
	return mmap.LoadOrigin, mmap.LoadMemtop - mmap.LoadOrigin + 1
}

// IsFlash returns true if the address is in flash memory.
func (mmap Map) IsFlash(addr uint32) bool {
	return addr >= mmap.FlashOrigin && addr <= mmap.FlashMemtop
}

// IsSRAM returns true if the address is in SRAM.
func (mmap Map) IsSRAM(addr uint32) bool {
	return addr >= mmap.SRAMOrigin && addr <= mmap.SRAMMemtop
}

func (mmap Map) String() string {
	return fmt.Sprintf("%s: flash %08x-%08x sram %08x-%08x load %08x-%08x", mmap.Model,
		mmap.FlashOrigin, mmap.FlashMemtop, mmap.SRAMOrigin, mmap.SRAMMemtop,
		mmap.LoadOrigin, mmap.LoadMemtop)
}
