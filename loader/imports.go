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

package loader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/logger"
	"github.com/picoelf/armlink/provider"
)

// FixImports rewrites the import table at the address. If the address is
// zero then the table is assumed to be at the start of the image.
//
// The table is an array of 32 bit pointers terminated by a zero entry. Each
// pointer must address a NUL terminated name inside the image. The pointer is
// replaced by the address the ABI table gives for the name. Every entry is
// attempted and all failures are reported together. Entries that fail are
// left unchanged.
func FixImports(img *Image, at uint32, abi provider.Provider) error {
	if img == nil || img.Block == nil {
		return curated.Errorf(ImportFailed, "no image")
	}
	if abi == nil {
		return curated.Errorf(ImportFailed, "no ABI table")
	}
	if at == 0 {
		at = img.Origin()
	}

	o := img.File.ByteOrder
	var failures []error

	for slot := at; ; slot += 4 {
		b, err := img.Block.Slice(slot, 4)
		if err != nil {
			failures = append(failures, fmt.Errorf("table at %08x is not terminated", at))
			break // for loop
		}

		ptr := o.Uint32(b)
		if ptr == 0 {
			break // for loop
		}

		name, err := img.stringAt(ptr)
		if err != nil {
			failures = append(failures, fmt.Errorf("entry at %08x: %w", slot, err))
			continue // for loop
		}

		addr, ok := abi.Resolve(name)
		if !ok {
			failures = append(failures, fmt.Errorf("entry at %08x: %s not found", slot, name))
			continue // for loop
		}

		o.PutUint32(b, addr)
		logger.Logf(logger.Allow, logTag, "import %s at %08x", name, addr)
	}

	if len(failures) > 0 {
		return curated.Errorf(ImportFailed, errors.Join(failures...))
	}
	return nil
}

// stringAt returns the NUL terminated string at the address.
func (img *Image) stringAt(addr uint32) (string, error) {
	if !img.Block.Contains(addr, 1) {
		return "", fmt.Errorf("pointer %08x is outside of image", addr)
	}
	b := img.Block.Data[addr-img.Block.Origin:]
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", fmt.Errorf("name at %08x is not terminated", addr)
	}
	if i == 0 {
		return "", fmt.Errorf("name at %08x is empty", addr)
	}
	return string(b[:i]), nil
}
