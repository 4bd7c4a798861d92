package selector

// Op is one bytecode instruction opcode, spec.md §4.4's opcode table.
type Op byte

const (
	OpMatchTag   Op = 0x01 // atom:u32
	OpMatchId    Op = 0x02 // atom:u32
	OpMatchClass Op = 0x03 // atom:u32

	OpMatchAttr       Op = 0x04 // name:u32 - presence only
	OpMatchAttrEq     Op = 0x05 // name:u32, val:u32
	OpMatchAttrWord   Op = 0x06 // name:u32, val:u32
	OpMatchAttrPrefix Op = 0x07 // name:u32, val:u32
	OpMatchAttrSuffix Op = 0x08 // name:u32, val:u32
	OpMatchAttrSubstr Op = 0x09 // name:u32, val:u32

	OpMatchAny Op = 0x0A // —

	OpPseudoFirstChild    Op = 0x10 // —
	OpPseudoLastChild     Op = 0x11 // —
	OpPseudoOnlyChild     Op = 0x12 // —
	OpPseudoNthChild      Op = 0x13 // a:i16, b:i16
	OpPseudoNthLastChild  Op = 0x14 // a:i16, b:i16
	OpPseudoEmpty         Op = 0x15 // —
	OpPseudoRoot          Op = 0x16 // —

	OpCombDescendant Op = 0x20 // —
	OpCombChild      Op = 0x21 // —
	OpCombAdjacent   Op = 0x22 // —
	OpCombSibling    Op = 0x23 // —

	OpJumpFail Op = 0x30 // off:i16
	OpJump     Op = 0x31 // off:i16
	OpJumpAlt  Op = 0x32 // off:i16

	OpBloomCheckClass Op = 0x40 // hash:u32
	OpBloomCheckId    Op = 0x41 // hash:u32
	OpBloomCheckTag   Op = 0x42 // hash:u32

	OpMatchSuccess Op = 0xFE // —
	OpMatchFail    Op = 0xFF // —
)

// String names the opcode, mostly for debug.Log and disassembly in tests.
func (o Op) String() string {
	switch o {
	case OpMatchTag:
		return "MATCH_TAG"
	case OpMatchId:
		return "MATCH_ID"
	case OpMatchClass:
		return "MATCH_CLASS"
	case OpMatchAttr:
		return "MATCH_ATTR"
	case OpMatchAttrEq:
		return "MATCH_ATTR_EQ"
	case OpMatchAttrWord:
		return "MATCH_ATTR_WORD"
	case OpMatchAttrPrefix:
		return "MATCH_ATTR_PREFIX"
	case OpMatchAttrSuffix:
		return "MATCH_ATTR_SUFFIX"
	case OpMatchAttrSubstr:
		return "MATCH_ATTR_SUBSTR"
	case OpMatchAny:
		return "MATCH_ANY"
	case OpPseudoFirstChild:
		return "PSEUDO_FIRST_CHILD"
	case OpPseudoLastChild:
		return "PSEUDO_LAST_CHILD"
	case OpPseudoOnlyChild:
		return "PSEUDO_ONLY_CHILD"
	case OpPseudoNthChild:
		return "PSEUDO_NTH_CHILD"
	case OpPseudoNthLastChild:
		return "PSEUDO_NTH_LAST_CHILD"
	case OpPseudoEmpty:
		return "PSEUDO_EMPTY"
	case OpPseudoRoot:
		return "PSEUDO_ROOT"
	case OpCombDescendant:
		return "COMB_DESCENDANT"
	case OpCombChild:
		return "COMB_CHILD"
	case OpCombAdjacent:
		return "COMB_ADJACENT"
	case OpCombSibling:
		return "COMB_SIBLING"
	case OpJumpFail:
		return "JUMP_FAIL"
	case OpJump:
		return "JUMP"
	case OpJumpAlt:
		return "JUMP_ALT"
	case OpBloomCheckClass:
		return "BLOOM_CHECK_CLASS"
	case OpBloomCheckId:
		return "BLOOM_CHECK_ID"
	case OpBloomCheckTag:
		return "BLOOM_CHECK_TAG"
	case OpMatchSuccess:
		return "MATCH_SUCCESS"
	case OpMatchFail:
		return "MATCH_FAIL"
	default:
		return "UNKNOWN"
	}
}

// Combinator is the textual-dialect combinator between two compounds,
// spec.md §4.4.
type Combinator byte

const (
	// Descendant is the implicit whitespace combinator.
	Descendant Combinator = iota
	Child
	Adjacent
	Sibling
)
