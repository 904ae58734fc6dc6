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

// 32 bit Thumb instructions are two halfwords. the first halfword is at the
// lower address regardless of byte order. halfwords are in the data byte
// order, which is only true of little-endian and BE32 code.
func halves(b []byte, o order) (uint32, uint32) {
	return uint32(o.Uint16(b)), uint32(o.Uint16(b[2:]))
}

func putHalves(b []byte, o order, hi uint32, lo uint32) {
	o.PutUint16(b, uint16(hi))
	o.PutUint16(b[2:], uint16(lo))
}

// BL, BLX and B.W. the offset is S:I1:I2:imm10:imm11:0 where I1 and I2 are
// stored as J1 = NOT(I1 XOR S) and J2 = NOT(I2 XOR S).
var thumbBranch = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		hi, lo := halves(b, o)
		s := (hi >> 10) & 1
		j1 := (lo >> 13) & 1
		j2 := (lo >> 11) & 1
		i1 := ^(j1 ^ s) & 1
		i2 := ^(j2 ^ s) & 1
		v := s<<24 | i1<<23 | i2<<22 | (hi&0x3ff)<<12 | (lo&0x7ff)<<1
		return signExtend(25, v)
	},
	encode: func(b []byte, o order, v uint32) {
		hi, lo := halves(b, o)
		s := (v >> 24) & 1
		i1 := (v >> 23) & 1
		i2 := (v >> 22) & 1
		j1 := ^(i1 ^ s) & 1
		j2 := ^(i2 ^ s) & 1
		hi = hi&0xf800 | s<<10 | (v>>12)&0x3ff
		lo = lo&0xd000 | j1<<13 | j2<<11 | (v>>1)&0x7ff
		putHalves(b, o, hi, lo)
	},
}

// B<cond>.W. the offset is S:J2:J1:imm6:imm11:0
var thumbCondBranch = field{
	width: 4,
	decode: func(b []byte, o order) uint32 {
		hi, lo := halves(b, o)
		s := (hi >> 10) & 1
		j1 := (lo >> 13) & 1
		j2 := (lo >> 11) & 1
		v := s<<20 | j2<<19 | j1<<18 | (hi&0x3f)<<12 | (lo&0x7ff)<<1
		return signExtend(21, v)
	},
	encode: func(b []byte, o order, v uint32) {
		hi, lo := halves(b, o)
		s := (v >> 20) & 1
		j2 := (v >> 19) & 1
		j1 := (v >> 18) & 1
		hi = hi&0xfbc0 | s<<10 | (v>>12)&0x3f
		lo = lo&0xd000 | j1<<13 | j2<<11 | (v>>1)&0x7ff
		putHalves(b, o, hi, lo)
	},
}

// imm12 as i:imm3:imm8. i is bit 10 of the first halfword, imm3 is bits
// 12-14 and imm8 bits 0-7 of the second.
func getImm12(hi, lo uint32) uint32 {
	return (hi>>10)&1<<11 | (lo>>12)&7<<8 | lo&0xff
}

func setImm12(hi, lo, v uint32) (uint32, uint32) {
	hi = hi&^0x0400 | (v>>11)&1<<10
	lo = lo&^0x70ff | (v>>8)&7<<12 | v&0xff
	return hi, lo
}

// thumbMove returns the field for MOVW or MOVT. imm16 is imm4:i:imm3:imm8
// with imm4 at bits 0-3 of the first halfword.
func thumbMove(top bool) field {
	return field{
		width: 4,
		decode: func(b []byte, o order) uint32 {
			hi, lo := halves(b, o)
			return signExtend(16, (hi&0xf)<<12|getImm12(hi, lo))
		},
		encode: func(b []byte, o order, v uint32) {
			if top {
				v >>= 16
			}
			hi, lo := halves(b, o)
			hi, lo = setImm12(hi, lo, v)
			hi = hi&^0x000f | (v>>12)&0xf
			putHalves(b, o, hi, lo)
		},
	}
}

var thumb32Fields = map[Type]field{
	THM_CALL:   thumbBranch,
	THM_JUMP24: thumbBranch,
	THM_JUMP19: thumbCondBranch,

	THM_MOVW_ABS_NC:  thumbMove(false),
	THM_MOVW_PREL_NC: thumbMove(false),
	THM_MOVT_ABS:     thumbMove(true),
	THM_MOVT_PREL:    thumbMove(true),

	// ADR.W, ADDW and SUBW with PC as the base register. bits 4-7 of the
	// first halfword are 0x0 for ADDW and 0xa for SUBW.
	THM_ALU_PREL_11_0: {
		width: 4,
		decode: func(b []byte, o order) uint32 {
			hi, lo := halves(b, o)
			imm := getImm12(hi, lo)
			if hi&0x00f0 != 0 {
				return -imm
			}
			return imm
		},
		encode: func(b []byte, o order, v uint32) {
			hi, lo := halves(b, o)
			hi &^= 0x00f0
			if int32(v) < 0 {
				hi |= 0x00a0
				v = -v
			}
			hi, lo = setImm12(hi, lo, v)
			putHalves(b, o, hi, lo)
		},
	},

	// LDR.W literal. U is bit 7 of the first halfword.
	THM_PC12: {
		width: 4,
		decode: func(b []byte, o order) uint32 {
			hi, lo := halves(b, o)
			imm := lo & 0x0fff
			if hi&0x0080 == 0 {
				return -imm
			}
			return imm
		},
		encode: func(b []byte, o order, v uint32) {
			hi, lo := halves(b, o)
			hi |= 0x0080
			if int32(v) < 0 {
				hi &^= 0x0080
				v = -v
			}
			lo = lo&^0x0fff | v&0x0fff
			putHalves(b, o, hi, lo)
		},
	},

	// LDR.W Rt, [Rn, #imm12]
	THM_GOT_BREL12: {
		width: 4,
		decode: func(b []byte, o order) uint32 {
			_, lo := halves(b, o)
			return lo & 0x0fff
		},
		encode: func(b []byte, o order, v uint32) {
			hi, lo := halves(b, o)
			putHalves(b, o, hi, lo&^0x0fff|v&0x0fff)
		},
	},
}
