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

// branch instructions. imm24 holds the word offset.
var armBranch = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		return signExtend(26, (o.Uint32(b)&0x00ffffff)<<2)
	},
	encode: func(b []byte, o order, v uint32) {
		merge32(b, o, 0x00ffffff, v>>2)
	},
}

// load and store with a U bit at bit 23 and an unsigned imm12.
var armImm12 = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		w := o.Uint32(b)
		imm := w & 0x0fff
		if w&0x00800000 == 0 {
			return -imm
		}
		return imm
	},
	encode: func(b []byte, o order, v uint32) {
		u := uint32(0x00800000)
		if int32(v) < 0 {
			u = 0
			v = -v
		}
		merge32(b, o, 0x00800fff, u|(v&0x0fff))
	},
}

// load and store halfword/doubleword. the imm8 is split into two nibbles
// at bits 8-11 and bits 0-3.
var armImm8Split = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		w := o.Uint32(b)
		imm := (w>>4)&0xf0 | w&0x0f
		if w&0x00800000 == 0 {
			return -imm
		}
		return imm
	},
	encode: func(b []byte, o order, v uint32) {
		u := uint32(0x00800000)
		if int32(v) < 0 {
			u = 0
			v = -v
		}
		merge32(b, o, 0x00800f0f, u|(v&0xf0)<<4|v&0x0f)
	},
}

// armMove returns the field for MOVW (the low half of the value) or MOVT
// (the high half). imm16 is imm4 at bits 16-19 and imm12 at bits 0-11.
func armMove(top bool) field {
	return field{
		width: 4,
		decode: func(b []byte, o order) uint32 {
			w := o.Uint32(b)
			return signExtend(16, (w>>4)&0xf000|w&0x0fff)
		},
		encode: func(b []byte, o order, v uint32) {
			if top {
				v >>= 16
			}
			merge32(b, o, 0x000f0fff, (v&0xf000)<<4|v&0x0fff)
		},
	}
}

var armFields = map[Type]field{
	PC24:   armBranch,
	PLT32:  armBranch,
	CALL:   armBranch,
	JUMP24: armBranch,

	LDR_PC_G0:  armImm12,
	ABS12:      armImm12,
	GOT_BREL12: armImm12,
	GOTOFF12:   armImm12,

	LDRS_PC_G0: armImm8Split,

	MOVW_ABS_NC:  armMove(false),
	MOVW_PREL_NC: armMove(false),
	MOVT_ABS:     armMove(true),
	MOVT_PREL:    armMove(true),
}
