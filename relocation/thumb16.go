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

// merge16 replaces the masked bits of a halfword.
func merge16(b []byte, o order, mask uint16, v uint32) {
	h := o.Uint16(b)
	o.PutUint16(b, (h&^mask)|(uint16(v)&mask))
}

// thumbALU returns the field for the MOVS/ADDS imm8 that holds the given
// byte of the value. the addend is the imm8 as stored.
func thumbALU(group uint) field {
	return field{
		width: 2,
		decode: func(b []byte, o order) uint32 {
			return uint32(o.Uint16(b) & 0x00ff)
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x00ff, v>>(group*8))
		},
	}
}

var thumb16Fields = map[Type]field{
	// LDR Rt, [Rn, #imm5*4]
	THM_ABS5: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			return uint32((o.Uint16(b)>>6)&0x1f) << 2
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x07c0, (v>>2)<<6)
		},
	},

	// ADR and LDR literal. the PC bias is folded into the addend.
	THM_PC8: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			imm := uint32(o.Uint16(b) & 0x00ff)
			return ((imm<<2)+4)&0x3ff - 4
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x00ff, v>>2)
		},
	},

	// CBZ and CBNZ. i at bit 9, imm5 at bits 3-7.
	THM_JUMP6: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			h := uint32(o.Uint16(b))
			imm := (h>>9)&1<<6 | (h>>3)&0x1f<<1
			return (imm+4)&0x7f - 4
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x02f8, (v>>6)&1<<9|(v>>1)&0x1f<<3)
		},
	},

	// B
	THM_JUMP11: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			return signExtend(12, uint32(o.Uint16(b)&0x07ff)<<1)
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x07ff, v>>1)
		},
	},

	// B<cond>
	THM_JUMP8: {
		width: 2,
		decode: func(b []byte, o order) uint32 {
			return signExtend(9, uint32(o.Uint16(b)&0x00ff)<<1)
		},
		encode: func(b []byte, o order, v uint32) {
			merge16(b, o, 0x00ff, v>>1)
		},
	},

	THM_ALU_ABS_G0_NC: thumbALU(0),
	THM_ALU_ABS_G1_NC: thumbALU(1),
	THM_ALU_ABS_G2_NC: thumbALU(2),
	THM_ALU_ABS_G3:    thumbALU(3),
}
