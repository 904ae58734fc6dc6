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

import "fmt"

// Type is an ARM ELF relocation type.
type Type uint32

// List of relocation types. Names are those of the ARM ELF specification
// without the R_ARM_ prefix.
const (
	NONE               Type = 0
	PC24               Type = 1
	ABS32              Type = 2
	REL32              Type = 3
	LDR_PC_G0          Type = 4
	ABS16              Type = 5
	ABS12              Type = 6
	THM_ABS5           Type = 7
	ABS8               Type = 8
	SBREL32            Type = 9
	THM_CALL           Type = 10
	THM_PC8            Type = 11
	BREL_ADJ           Type = 12
	TLS_DESC           Type = 13
	THM_SWI8           Type = 14
	XPC25              Type = 15
	THM_XPC22          Type = 16
	TLS_DTPMOD32       Type = 17
	TLS_DTPOFF32       Type = 18
	TLS_TPOFF32        Type = 19
	COPY               Type = 20
	GLOB_DAT           Type = 21
	JUMP_SLOT          Type = 22
	RELATIVE           Type = 23
	GOTOFF32           Type = 24
	BASE_PREL          Type = 25
	GOT_BREL           Type = 26
	PLT32              Type = 27
	CALL               Type = 28
	JUMP24             Type = 29
	THM_JUMP24         Type = 30
	BASE_ABS           Type = 31
	ALU_PCREL_7_0      Type = 32
	ALU_PCREL_15_8     Type = 33
	ALU_PCREL_23_15    Type = 34
	LDR_SBREL_11_0_NC  Type = 35
	ALU_SBREL_19_12_NC Type = 36
	ALU_SBREL_27_20_CK Type = 37
	TARGET1            Type = 38
	SBREL31            Type = 39
	V4BX               Type = 40
	TARGET2            Type = 41
	PREL31             Type = 42
	MOVW_ABS_NC        Type = 43
	MOVT_ABS           Type = 44
	MOVW_PREL_NC       Type = 45
	MOVT_PREL          Type = 46
	THM_MOVW_ABS_NC    Type = 47
	THM_MOVT_ABS       Type = 48
	THM_MOVW_PREL_NC   Type = 49
	THM_MOVT_PREL      Type = 50
	THM_JUMP19         Type = 51
	THM_JUMP6          Type = 52
	THM_ALU_PREL_11_0  Type = 53
	THM_PC12           Type = 54
	ABS32_NOI          Type = 55
	REL32_NOI          Type = 56
	ALU_PC_G0_NC       Type = 57
	ALU_PC_G0          Type = 58
	ALU_PC_G1_NC       Type = 59
	ALU_PC_G1          Type = 60
	ALU_PC_G2          Type = 61
	LDR_PC_G1          Type = 62
	LDR_PC_G2          Type = 63
	LDRS_PC_G0         Type = 64
	LDRS_PC_G1         Type = 65
	LDRS_PC_G2         Type = 66
	LDC_PC_G0          Type = 67
	LDC_PC_G1          Type = 68
	LDC_PC_G2          Type = 69
	ALU_SB_G0_NC       Type = 70
	ALU_SB_G0          Type = 71
	ALU_SB_G1_NC       Type = 72
	ALU_SB_G1          Type = 73
	ALU_SB_G2          Type = 74
	LDR_SB_G0          Type = 75
	LDR_SB_G1          Type = 76
	LDR_SB_G2          Type = 77
	LDRS_SB_G0         Type = 78
	LDRS_SB_G1         Type = 79
	LDRS_SB_G2         Type = 80
	LDC_SB_G0          Type = 81
	LDC_SB_G1          Type = 82
	LDC_SB_G2          Type = 83
	MOVW_BREL_NC       Type = 84
	MOVT_BREL          Type = 85
	MOVW_BREL          Type = 86
	THM_MOVW_BREL_NC   Type = 87
	THM_MOVT_BREL      Type = 88
	THM_MOVW_BREL      Type = 89
	TLS_GOTDESC        Type = 90
	TLS_CALL           Type = 91
	TLS_DESCSEQ        Type = 92
	THM_TLS_CALL       Type = 93
	PLT32_ABS          Type = 94
	GOT_ABS            Type = 95
	GOT_PREL           Type = 96
	GOT_BREL12         Type = 97
	GOTOFF12           Type = 98
	GOTRELAX           Type = 99
	GNU_VTENTRY        Type = 100
	GNU_VTINHERIT      Type = 101
	THM_JUMP11         Type = 102
	THM_JUMP8          Type = 103
	TLS_GD32           Type = 104
	TLS_LDM32          Type = 105
	TLS_LDO32          Type = 106
	TLS_IE32           Type = 107
	TLS_LE32           Type = 108
	TLS_LDO12          Type = 109
	TLS_LE12           Type = 110
	TLS_IE12GP         Type = 111
	ME_TOO             Type = 128
	THM_TLS_DESCSEQ16  Type = 129
	THM_TLS_DESCSEQ32  Type = 130
	THM_GOT_BREL12     Type = 131
	THM_ALU_ABS_G0_NC  Type = 132
	THM_ALU_ABS_G1_NC  Type = 133
	THM_ALU_ABS_G2_NC  Type = 134
	THM_ALU_ABS_G3     Type = 135
	THM_BF16           Type = 136
	THM_BF12           Type = 137
	THM_BF18           Type = 138
	IRELATIVE          Type = 160
)

var names = map[Type]string{
	NONE: "NONE", PC24: "PC24", ABS32: "ABS32", REL32: "REL32",
	LDR_PC_G0: "LDR_PC_G0", ABS16: "ABS16", ABS12: "ABS12",
	THM_ABS5: "THM_ABS5", ABS8: "ABS8", SBREL32: "SBREL32",
	THM_CALL: "THM_CALL", THM_PC8: "THM_PC8", BREL_ADJ: "BREL_ADJ",
	TLS_DESC: "TLS_DESC", THM_SWI8: "THM_SWI8", XPC25: "XPC25",
	THM_XPC22: "THM_XPC22", TLS_DTPMOD32: "TLS_DTPMOD32",
	TLS_DTPOFF32: "TLS_DTPOFF32", TLS_TPOFF32: "TLS_TPOFF32", COPY: "COPY",
	GLOB_DAT: "GLOB_DAT", JUMP_SLOT: "JUMP_SLOT", RELATIVE: "RELATIVE",
	GOTOFF32: "GOTOFF32", BASE_PREL: "BASE_PREL", GOT_BREL: "GOT_BREL",
	PLT32: "PLT32", CALL: "CALL", JUMP24: "JUMP24", THM_JUMP24: "THM_JUMP24",
	BASE_ABS: "BASE_ABS", ALU_PCREL_7_0: "ALU_PCREL_7_0",
	ALU_PCREL_15_8: "ALU_PCREL_15_8", ALU_PCREL_23_15: "ALU_PCREL_23_15",
	LDR_SBREL_11_0_NC: "LDR_SBREL_11_0_NC", ALU_SBREL_19_12_NC: "ALU_SBREL_19_12_NC",
	ALU_SBREL_27_20_CK: "ALU_SBREL_27_20_CK", TARGET1: "TARGET1",
	SBREL31: "SBREL31", V4BX: "V4BX", TARGET2: "TARGET2", PREL31: "PREL31",
	MOVW_ABS_NC: "MOVW_ABS_NC", MOVT_ABS: "MOVT_ABS",
	MOVW_PREL_NC: "MOVW_PREL_NC", MOVT_PREL: "MOVT_PREL",
	THM_MOVW_ABS_NC: "THM_MOVW_ABS_NC", THM_MOVT_ABS: "THM_MOVT_ABS",
	THM_MOVW_PREL_NC: "THM_MOVW_PREL_NC", THM_MOVT_PREL: "THM_MOVT_PREL",
	THM_JUMP19: "THM_JUMP19", THM_JUMP6: "THM_JUMP6",
	THM_ALU_PREL_11_0: "THM_ALU_PREL_11_0", THM_PC12: "THM_PC12",
	ABS32_NOI: "ABS32_NOI", REL32_NOI: "REL32_NOI",
	ALU_PC_G0_NC: "ALU_PC_G0_NC", ALU_PC_G0: "ALU_PC_G0",
	ALU_PC_G1_NC: "ALU_PC_G1_NC", ALU_PC_G1: "ALU_PC_G1", ALU_PC_G2: "ALU_PC_G2",
	LDR_PC_G1: "LDR_PC_G1", LDR_PC_G2: "LDR_PC_G2",
	LDRS_PC_G0: "LDRS_PC_G0", LDRS_PC_G1: "LDRS_PC_G1", LDRS_PC_G2: "LDRS_PC_G2",
	LDC_PC_G0: "LDC_PC_G0", LDC_PC_G1: "LDC_PC_G1", LDC_PC_G2: "LDC_PC_G2",
	ALU_SB_G0_NC: "ALU_SB_G0_NC", ALU_SB_G0: "ALU_SB_G0",
	ALU_SB_G1_NC: "ALU_SB_G1_NC", ALU_SB_G1: "ALU_SB_G1", ALU_SB_G2: "ALU_SB_G2",
	LDR_SB_G0: "LDR_SB_G0", LDR_SB_G1: "LDR_SB_G1", LDR_SB_G2: "LDR_SB_G2",
	LDRS_SB_G0: "LDRS_SB_G0", LDRS_SB_G1: "LDRS_SB_G1", LDRS_SB_G2: "LDRS_SB_G2",
	LDC_SB_G0: "LDC_SB_G0", LDC_SB_G1: "LDC_SB_G1", LDC_SB_G2: "LDC_SB_G2",
	MOVW_BREL_NC: "MOVW_BREL_NC", MOVT_BREL: "MOVT_BREL", MOVW_BREL: "MOVW_BREL",
	THM_MOVW_BREL_NC: "THM_MOVW_BREL_NC", THM_MOVT_BREL: "THM_MOVT_BREL",
	THM_MOVW_BREL: "THM_MOVW_BREL", TLS_GOTDESC: "TLS_GOTDESC",
	TLS_CALL: "TLS_CALL", TLS_DESCSEQ: "TLS_DESCSEQ", THM_TLS_CALL: "THM_TLS_CALL",
	PLT32_ABS: "PLT32_ABS", GOT_ABS: "GOT_ABS", GOT_PREL: "GOT_PREL",
	GOT_BREL12: "GOT_BREL12", GOTOFF12: "GOTOFF12", GOTRELAX: "GOTRELAX",
	GNU_VTENTRY: "GNU_VTENTRY", GNU_VTINHERIT: "GNU_VTINHERIT",
	THM_JUMP11: "THM_JUMP11", THM_JUMP8: "THM_JUMP8",
	TLS_GD32: "TLS_GD32", TLS_LDM32: "TLS_LDM32", TLS_LDO32: "TLS_LDO32",
	TLS_IE32: "TLS_IE32", TLS_LE32: "TLS_LE32", TLS_LDO12: "TLS_LDO12",
	TLS_LE12: "TLS_LE12", TLS_IE12GP: "TLS_IE12GP", ME_TOO: "ME_TOO",
	THM_TLS_DESCSEQ16: "THM_TLS_DESCSEQ16", THM_TLS_DESCSEQ32: "THM_TLS_DESCSEQ32",
	THM_GOT_BREL12: "THM_GOT_BREL12", THM_ALU_ABS_G0_NC: "THM_ALU_ABS_G0_NC",
	THM_ALU_ABS_G1_NC: "THM_ALU_ABS_G1_NC", THM_ALU_ABS_G2_NC: "THM_ALU_ABS_G2_NC",
	THM_ALU_ABS_G3: "THM_ALU_ABS_G3", THM_BF16: "THM_BF16", THM_BF12: "THM_BF12",
	THM_BF18: "THM_BF18", IRELATIVE: "IRELATIVE",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return "R_ARM_" + n
	}
	return fmt.Sprintf("R_ARM_%d", uint32(t))
}

// Known returns true if the type is listed in the ARM ELF specification.
// Being known does not mean the type is supported.
func (t Type) Known() bool {
	_, ok := names[t]
	return ok
}

// Family is the encoding family of a relocation type.
type Family int

// List of valid Family values.
const (
	FamilyUnsupported Family = iota
	FamilyNone
	FamilyData
	FamilyARM
	FamilyThumb16
	FamilyThumb32
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyData:
		return "data"
	case FamilyARM:
		return "ARM"
	case FamilyThumb16:
		return "Thumb16"
	case FamilyThumb32:
		return "Thumb32"
	}
	return "unsupported"
}

// field describes the bit layout of a relocated location.
type field struct {
	// number of bytes at the location
	width int

	// decode the addend stored in the location
	decode func(b []byte, o order) uint32

	// encode the value into the location, preserving the bits that are not
	// part of the field
	encode func(b []byte, o order, v uint32)
}

// Family returns the encoding family of the type.
func (t Type) Family() Family {
	switch t {
	case NONE, V4BX:
		return FamilyNone
	}
	if _, ok := dataFields[t]; ok {
		return FamilyData
	}
	if _, ok := armFields[t]; ok {
		return FamilyARM
	}
	if _, ok := thumb16Fields[t]; ok {
		return FamilyThumb16
	}
	if _, ok := thumb32Fields[t]; ok {
		return FamilyThumb32
	}
	return FamilyUnsupported
}

// Supported returns true if the type has an implemented formula and encoding.
func (t Type) Supported() bool {
	return t.Family() != FamilyUnsupported
}

// field returns the bit layout of the type.
func (t Type) field() (field, bool) {
	switch t.Family() {
	case FamilyData:
		return dataFields[t], true
	case FamilyARM:
		return armFields[t], true
	case FamilyThumb16:
		return thumb16Fields[t], true
	case FamilyThumb32:
		return thumb32Fields[t], true
	}
	return field{}, false
}

// Width returns the number of bytes patched by the type. Zero for the types
// that patch nothing and for unsupported types.
func Width(t Type) int {
	f, ok := t.field()
	if !ok {
		return 0
	}
	return f.width
}
