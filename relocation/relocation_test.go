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

package relocation_test

import (
	"encoding/binary"
	"testing"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/relocation"
	"github.com/picoelf/armlink/test"
)

var le = binary.LittleEndian

// instruction templates. the values in the patched fields are zero
const (
	armBL      = 0xeb000000
	armLDRpc   = 0xe59f0000
	armLDRHpc  = 0xe1df00b0
	armMOVW    = 0xe3000000
	armMOVT    = 0xe3400000
	thumbLDR   = 0x6800
	thumbLDRpc = 0x4800
	thumbCBZ   = 0xb100
	thumbB     = 0xe000
	thumbBcond = 0xd000
	thumbMOVS  = 0x2000
)

func word(w uint32) []byte {
	b := make([]byte, 4)
	le.PutUint32(b, w)
	return b
}

func half(h uint16) []byte {
	b := make([]byte, 2)
	le.PutUint16(b, h)
	return b
}

func pair(hi, lo uint16) []byte {
	b := make([]byte, 4)
	le.PutUint16(b, hi)
	le.PutUint16(b[2:], lo)
	return b
}

type roundTrip struct {
	typ      relocation.Type
	template []byte
	value    uint32

	// the value as read back. for most types this is the value itself
	field uint32
}

func TestRoundTrip(t *testing.T) {
	neg := func(v uint32) uint32 { return -v }

	cases := []roundTrip{
		{typ: relocation.ABS32, template: word(0), value: 0x12345678},
		{typ: relocation.REL32, template: word(0), value: neg(0x100)},
		{typ: relocation.TARGET1, template: word(0), value: 0x20000001},
		{typ: relocation.GLOB_DAT, template: word(0), value: 0x20001000},
		{typ: relocation.JUMP_SLOT, template: word(0), value: 0x20001000},
		{typ: relocation.GOTOFF32, template: word(0), value: 0x40},
		{typ: relocation.BASE_PREL, template: word(0), value: 0x1000},
		{typ: relocation.GOT_BREL, template: word(0), value: 0x8},
		{typ: relocation.BASE_ABS, template: word(0), value: 0x20030000},
		{typ: relocation.ABS32_NOI, template: word(0), value: 0xdeadbeef},
		{typ: relocation.REL32_NOI, template: word(0), value: 0x10},
		{typ: relocation.GOT_ABS, template: word(0), value: 0x20030004},
		{typ: relocation.GOT_PREL, template: word(0), value: neg(0x20)},
		{typ: relocation.PREL31, template: word(0x80000000), value: neg(16)},
		{typ: relocation.ABS16, template: half(0), value: 0x1234},
		{typ: relocation.ABS8, template: []byte{0}, value: 0x7f},

		{typ: relocation.PC24, template: word(armBL), value: neg(8)},
		{typ: relocation.PLT32, template: word(armBL), value: 0x1000},
		{typ: relocation.CALL, template: word(armBL), value: 0x1fffffc},
		{typ: relocation.JUMP24, template: word(armBL), value: neg(0x2000000)},
		{typ: relocation.LDR_PC_G0, template: word(armLDRpc), value: 0x123},
		{typ: relocation.LDR_PC_G0, template: word(armLDRpc), value: neg(0x10)},
		{typ: relocation.ABS12, template: word(armLDRpc), value: 0xfff},
		{typ: relocation.GOT_BREL12, template: word(armLDRpc), value: 0x20},
		{typ: relocation.GOTOFF12, template: word(armLDRpc), value: neg(0x20)},
		{typ: relocation.LDRS_PC_G0, template: word(armLDRHpc), value: 0x45},
		{typ: relocation.LDRS_PC_G0, template: word(armLDRHpc), value: neg(0xff)},
		{typ: relocation.MOVW_ABS_NC, template: word(armMOVW), value: 0x1234},
		{typ: relocation.MOVW_PREL_NC, template: word(armMOVW), value: neg(0x100)},
		{typ: relocation.MOVT_ABS, template: word(armMOVT), value: 0x12345678, field: 0x1234},
		{typ: relocation.MOVT_PREL, template: word(armMOVT), value: 0xfffe0000, field: neg(2)},

		{typ: relocation.THM_ABS5, template: half(thumbLDR), value: 0x7c},
		{typ: relocation.THM_PC8, template: half(thumbLDRpc), value: 0x100},
		{typ: relocation.THM_PC8, template: half(thumbLDRpc), value: neg(4)},
		{typ: relocation.THM_JUMP6, template: half(thumbCBZ), value: 0x40},
		{typ: relocation.THM_JUMP6, template: half(thumbCBZ), value: 0x7a},
		{typ: relocation.THM_JUMP11, template: half(thumbB), value: neg(0x100)},
		{typ: relocation.THM_JUMP8, template: half(thumbBcond), value: neg(0x20)},
		{typ: relocation.THM_ALU_ABS_G0_NC, template: half(thumbMOVS), value: 0x12345678, field: 0x78},
		{typ: relocation.THM_ALU_ABS_G1_NC, template: half(thumbMOVS), value: 0x12345678, field: 0x56},
		{typ: relocation.THM_ALU_ABS_G2_NC, template: half(thumbMOVS), value: 0x12345678, field: 0x34},
		{typ: relocation.THM_ALU_ABS_G3, template: half(thumbMOVS), value: 0x12345678, field: 0x12},

		{typ: relocation.THM_CALL, template: pair(0xf000, 0xf800), value: 0x123456},
		{typ: relocation.THM_CALL, template: pair(0xf000, 0xf800), value: neg(0x1000)},
		{typ: relocation.THM_CALL, template: pair(0xf000, 0xe800), value: 0xfffffc},
		{typ: relocation.THM_JUMP24, template: pair(0xf000, 0xb800), value: neg(0x1000000)},
		{typ: relocation.THM_JUMP19, template: pair(0xf000, 0x8000), value: neg(0x800)},
		{typ: relocation.THM_JUMP19, template: pair(0xf000, 0x8000), value: 0xffffe},
		{typ: relocation.THM_MOVW_ABS_NC, template: pair(0xf240, 0x0000), value: 0x7abc},
		{typ: relocation.THM_MOVW_PREL_NC, template: pair(0xf240, 0x0000), value: neg(0x42)},
		{typ: relocation.THM_MOVT_ABS, template: pair(0xf2c0, 0x0000), value: 0x7abc0000, field: 0x7abc},
		{typ: relocation.THM_MOVT_PREL, template: pair(0xf2c0, 0x0000), value: 0x00010000, field: 1},
		{typ: relocation.THM_ALU_PREL_11_0, template: pair(0xf20f, 0x0000), value: 0x456},
		{typ: relocation.THM_ALU_PREL_11_0, template: pair(0xf20f, 0x0000), value: neg(0x123)},
		{typ: relocation.THM_PC12, template: pair(0xf8df, 0x0000), value: 0x10},
		{typ: relocation.THM_PC12, template: pair(0xf8df, 0x0000), value: neg(0x10)},
		{typ: relocation.THM_GOT_BREL12, template: pair(0xf8d0, 0x0000), value: 0x234},
	}

	for _, c := range cases {
		test.ExpectSuccess(t, c.typ.Supported(), c.typ)
		test.ExpectEquality(t, relocation.Width(c.typ), len(c.template), c.typ)

		loc := append([]byte{}, c.template...)
		err := relocation.Apply(c.typ, loc, le, c.value)
		if !test.ExpectSuccess(t, err, c.typ) {
			continue
		}

		a, err := relocation.Addend(c.typ, loc, le)
		test.ExpectSuccess(t, err, c.typ)

		expected := c.value
		if c.field != 0 {
			expected = c.field
		}
		test.ExpectEquality(t, a, expected, c.typ, c.value)
	}
}

func TestPreservedBits(t *testing.T) {
	loc := word(armBL | 0x10000000)
	test.ExpectSuccess(t, relocation.Apply(relocation.PC24, loc, le, 0xfffffff8))
	test.ExpectEquality(t, le.Uint32(loc)&0xff000000, uint32(0xfb000000))

	// BLX keeps bit 12 of the second halfword clear
	loc = pair(0xf000, 0xe800)
	test.ExpectSuccess(t, relocation.Apply(relocation.THM_CALL, loc, le, 0x400))
	test.ExpectEquality(t, le.Uint16(loc)&0xf800, uint16(0xf000))
	test.ExpectEquality(t, le.Uint16(loc[2:])&0xd000, uint16(0xc000))

	// the destination register of MOVW is preserved
	loc = word(armMOVW | 0x00007000)
	test.ExpectSuccess(t, relocation.Apply(relocation.MOVW_ABS_NC, loc, le, 0xffff))
	test.ExpectEquality(t, le.Uint32(loc), uint32(0xe30f7fff))

	// the condition code of B<cond>.W is preserved
	loc = pair(0xf000|0x0040, 0x8000)
	test.ExpectSuccess(t, relocation.Apply(relocation.THM_JUMP19, loc, le, 0x10))
	test.ExpectEquality(t, le.Uint16(loc)&0x03c0, uint16(0x0040))
}

func TestThumbCall(t *testing.T) {
	const P = 0x20000010
	const S = 0x20000400

	loc := pair(0xf000, 0xf800)
	a, err := relocation.Addend(relocation.THM_CALL, loc, le)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0))

	v, err := relocation.Evaluate(relocation.THM_CALL, relocation.Values{S: S, A: a, P: P})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, relocation.Apply(relocation.THM_CALL, loc, le, v))

	d, err := relocation.Addend(relocation.THM_CALL, loc, le)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d, uint32(S-P))

	// backwards branch with the usual gcc addend of -4
	loc = pair(0xf7ff, 0xfffe)
	a, err = relocation.Addend(relocation.THM_CALL, loc, le)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int32(a), int32(-4))

	v, err = relocation.Evaluate(relocation.THM_CALL, relocation.Values{S: P - 0x100, A: a, P: P})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int32(v), int32(-0x104))
}

func TestFormulas(t *testing.T) {
	v := relocation.Values{
		S:         0x20000101,
		A:         0x10,
		P:         0x20000042,
		T:         1,
		GOTOrigin: 0x20030000,
		GOTEntry:  0x20030008,
	}

	cases := []struct {
		typ      relocation.Type
		expected uint32
	}{
		{relocation.ABS32, 0x20000111},
		{relocation.ABS16, 0x20000111},
		{relocation.REL32, 0x20000111 - 0x20000042},
		{relocation.THM_CALL, 0x20000111 - 0x20000042},
		{relocation.THM_JUMP11, 0x20000111 - 0x20000042},
		{relocation.THM_PC8, 0x20000111 - 0x20000040},
		{relocation.THM_PC12, 0x20000111 - 0x20000040},
		{relocation.THM_ALU_PREL_11_0, 0x20000111 - 0x20000040},
		{relocation.GOTOFF32, 0xfffd0111},
		{relocation.GOTOFF12, 0xfffd0111},
		{relocation.BASE_PREL, 0x20030010 - 0x20000042},
		{relocation.BASE_ABS, 0x20030010},
		{relocation.GOT_BREL, 0x18},
		{relocation.GOT_ABS, 0x20030018},
		{relocation.GOT_PREL, 0x20030018 - 0x20000042},
		{relocation.NONE, 0},
		{relocation.V4BX, 0},
	}

	for _, c := range cases {
		r, err := relocation.Evaluate(c.typ, v)
		test.ExpectSuccess(t, err, c.typ)
		test.ExpectEquality(t, r, c.expected, c.typ)
	}

	// the Thumb bit is set on an even symbol address
	v.S = 0x20000100
	r, err := relocation.Evaluate(relocation.ABS32, v)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r, uint32(0x20000111))
}

func TestUnsupported(t *testing.T) {
	for _, typ := range []relocation.Type{
		relocation.TLS_GD32, relocation.SBREL32, relocation.ALU_PC_G1,
		relocation.THM_BF16, relocation.COPY, relocation.Type(250),
	} {
		test.ExpectFailure(t, typ.Supported(), typ)
		test.ExpectEquality(t, typ.Family(), relocation.FamilyUnsupported, typ)
		test.ExpectEquality(t, relocation.Width(typ), 0, typ)

		loc := word(0xcafef00d)
		err := relocation.Apply(typ, loc, le, 0x12345678)
		test.ExpectSuccess(t, curated.Is(err, relocation.Unsupported), typ)
		test.ExpectEquality(t, le.Uint32(loc), uint32(0xcafef00d), typ)

		_, err = relocation.Evaluate(typ, relocation.Values{})
		test.ExpectSuccess(t, curated.Is(err, relocation.Unsupported), typ)

		_, err = relocation.Addend(typ, loc, le)
		test.ExpectSuccess(t, curated.Is(err, relocation.Unsupported), typ)
	}
}

func TestNoop(t *testing.T) {
	loc := word(0xe12fff10)
	test.ExpectSuccess(t, relocation.Apply(relocation.V4BX, loc, le, 0xffffffff))
	test.ExpectEquality(t, le.Uint32(loc), uint32(0xe12fff10))
	test.ExpectEquality(t, relocation.V4BX.Family(), relocation.FamilyNone)
	test.ExpectSuccess(t, relocation.NONE.Supported())
}

func TestShortLocation(t *testing.T) {
	err := relocation.Apply(relocation.ABS32, make([]byte, 2), le, 1)
	test.ExpectSuccess(t, curated.Is(err, relocation.ShortField))
	_, err = relocation.Addend(relocation.THM_CALL, make([]byte, 3), le)
	test.ExpectSuccess(t, curated.Is(err, relocation.ShortField))
}

func TestByteOrder(t *testing.T) {
	loc := make([]byte, 4)
	test.ExpectSuccess(t, relocation.Apply(relocation.ABS32, loc, binary.BigEndian, 0x11223344))
	test.ExpectEquality(t, loc[0], uint8(0x11))
	test.ExpectEquality(t, loc[3], uint8(0x44))

	a, err := relocation.Addend(relocation.ABS32, loc, binary.BigEndian)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, uint32(0x11223344))
}

func TestNames(t *testing.T) {
	test.ExpectEquality(t, relocation.THM_CALL.String(), "R_ARM_THM_CALL")
	test.ExpectEquality(t, relocation.ABS32.String(), "R_ARM_ABS32")
	test.ExpectEquality(t, relocation.Type(250).String(), "R_ARM_250")
	test.ExpectSuccess(t, relocation.TLS_GD32.Known())
	test.ExpectFailure(t, relocation.Type(250).Known())

	test.ExpectEquality(t, relocation.ABS32.Family(), relocation.FamilyData)
	test.ExpectEquality(t, relocation.JUMP24.Family(), relocation.FamilyARM)
	test.ExpectEquality(t, relocation.THM_JUMP8.Family(), relocation.FamilyThumb16)
	test.ExpectEquality(t, relocation.THM_JUMP24.Family(), relocation.FamilyThumb32)
	test.ExpectEquality(t, relocation.FamilyThumb32.String(), "Thumb32")

	test.ExpectSuccess(t, relocation.UsesGOT(relocation.GOT_PREL))
	test.ExpectFailure(t, relocation.UsesGOT(relocation.ABS32))
}
