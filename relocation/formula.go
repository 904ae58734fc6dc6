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

import "github.com/picoelf/armlink/curated"

// Values are the inputs to a relocation formula. All arithmetic is modulo
// 2^32.
type Values struct {
	// address of the symbol
	S uint32

	// the addend. either decoded from the location (REL) or taken from the
	// relocation entry (RELA)
	A uint32

	// address of the location being relocated
	P uint32

	// one if the target symbol is a Thumb function
	T uint32

	// address of the global offset table. this is also the base address
	// B(S) for the base relative types
	GOTOrigin uint32

	// address of the global offset table entry for the symbol
	GOTEntry uint32
}

// Pa is P rounded down to a word boundary.
func (v Values) Pa() uint32 {
	return v.P &^ 3
}

var formulas = map[Type]func(v Values) uint32{
	NONE: nil,
	V4BX: nil,

	// (S + A) | T
	ABS32:             absT,
	TARGET1:           absT,
	GLOB_DAT:          absT,
	JUMP_SLOT:         absT,
	MOVW_ABS_NC:       absT,
	THM_MOVW_ABS_NC:   absT,
	THM_ALU_ABS_G0_NC: absT,
	THM_ALU_ABS_G1_NC: absT,
	THM_ALU_ABS_G2_NC: absT,
	THM_ALU_ABS_G3:    absT,

	// ((S + A) | T) - P
	REL32:            relT,
	PC24:             relT,
	PLT32:            relT,
	CALL:             relT,
	JUMP24:           relT,
	THM_CALL:         relT,
	THM_JUMP24:       relT,
	THM_JUMP19:       relT,
	PREL31:           relT,
	MOVW_PREL_NC:     relT,
	THM_MOVW_PREL_NC: relT,

	// S + A
	ABS16:        abs,
	ABS12:        abs,
	ABS8:         abs,
	THM_ABS5:     abs,
	ABS32_NOI:    abs,
	MOVT_ABS:     abs,
	THM_MOVT_ABS: abs,

	// S + A - P
	REL32_NOI:     rel,
	LDR_PC_G0:     rel,
	LDRS_PC_G0:    rel,
	MOVT_PREL:     rel,
	THM_MOVT_PREL: rel,
	THM_JUMP6:     rel,
	THM_JUMP11:    rel,
	THM_JUMP8:     rel,

	// S + A - Pa
	THM_PC8:  func(v Values) uint32 { return v.S + v.A - v.Pa() },
	THM_PC12: func(v Values) uint32 { return v.S + v.A - v.Pa() },

	// ((S + A) | T) - Pa
	THM_ALU_PREL_11_0: func(v Values) uint32 { return absT(v) - v.Pa() },

	// ((S + A) | T) - GOT_ORG
	GOTOFF32: func(v Values) uint32 { return absT(v) - v.GOTOrigin },

	// S + A - GOT_ORG
	GOTOFF12: func(v Values) uint32 { return v.S + v.A - v.GOTOrigin },

	// B(S) + A - P
	BASE_PREL: func(v Values) uint32 { return v.GOTOrigin + v.A - v.P },

	// B(S) + A
	BASE_ABS: func(v Values) uint32 { return v.GOTOrigin + v.A },

	// GOT(S) + A - GOT_ORG
	GOT_BREL:       gotRel,
	GOT_BREL12:     gotRel,
	THM_GOT_BREL12: gotRel,

	// GOT(S) + A
	GOT_ABS: func(v Values) uint32 { return v.GOTEntry + v.A },

	// GOT(S) + A - P
	GOT_PREL: func(v Values) uint32 { return v.GOTEntry + v.A - v.P },
}

func abs(v Values) uint32 {
	return v.S + v.A
}

func absT(v Values) uint32 {
	return (v.S + v.A) | v.T
}

func rel(v Values) uint32 {
	return v.S + v.A - v.P
}

func relT(v Values) uint32 {
	return absT(v) - v.P
}

func gotRel(v Values) uint32 {
	return v.GOTEntry + v.A - v.GOTOrigin
}

// UsesGOT returns true if the formula for the type refers to the global
// offset table entry of the symbol.
func UsesGOT(t Type) bool {
	switch t {
	case GOT_BREL, GOT_BREL12, THM_GOT_BREL12, GOT_ABS, GOT_PREL:
		return true
	}
	return false
}

// Evaluate the formula for the relocation type. The types that patch nothing
// evaluate to zero.
func Evaluate(t Type, v Values) (uint32, error) {
	if !t.Supported() {
		return 0, curated.Errorf(Unsupported, t)
	}
	f := formulas[t]
	if f == nil {
		return 0, nil
	}
	return f(v), nil
}
