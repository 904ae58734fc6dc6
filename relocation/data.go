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

package relocation

import "encoding/binary"

type order = binary.ByteOrder

// signExtend treats the low bits of v as a two's complement number.
func signExtend(bits uint, v uint32) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

// merge32 replaces the masked bits of a word.
func merge32(b []byte, o order, mask uint32, v uint32) {
	w := o.Uint32(b)
	o.PutUint32(b, (w&^mask)|(v&mask))
}

var word = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		return o.Uint32(b)
	},
	encode: func(b []byte, o order, v uint32) {
		o.PutUint32(b, v)
	},
}

var dataFields = map[Type]field{
	ABS32:     word,
	REL32:     word,
	TARGET1:   word,
	GLOB_DAT:  word,
	JUMP_SLOT: word,
	GOTOFF32:  word,
	BASE_PREL: word,
	GOT_BREL:  word,
	BASE_ABS:  word,
	ABS32_NOI: word,
	REL32_NOI: word,
	GOT_ABS:   word,
	GOT_PREL:  word,

	PREL31: {
		width: 4,
		decode: func(b []byte, o order) uint32 {
			return signExtend(31, o.Uint32(b)&0x7fffffff)
		},
		encode: func(b []byte, o order, v uint32) {
			merge32(b, o, 0x7fffffff, v)
		},
	},

	ABS16: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			return signExtend(16, uint32(o.Uint16(b)))
		},
		encode: func(b []byte, o order, v uint32) {
			o.PutUint16(b, uint16(v))
		},
	},

	ABS8: {
		width: 1,
		decode: func(b []byte, _ order) uint32 {
			return signExtend(8, uint32(b[0]))
		},
		encode: func(b []byte, _ order, v uint32) {
			b[0] = uint8(v)
		},
	},
}
