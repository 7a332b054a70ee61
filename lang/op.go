package lang

// Op identifies a statement of the language.
type Op uint8

const (
	OpInvalid Op = iota
	OpMal        // Mal name length: allocate an array
	OpAss        // Ass name value: name[0] = value
	OpInc        // Inc name index: name[index]++
	OpDec        // Dec name index: name[index]--
	OpPri        // Pri name index: print name[index]
	OpAdd        // Add a b: a[0] += b[0]
	OpSub        // Sub a b: a[0] -= b[0]
	OpMul        // Mul a b: a[0] *= b[0]
	OpAnd        // And a b: pointwise a[i] = (a[i]*b[i]) mod 2
	OpXor        // Xor a b: pointwise a[i] = (a[i]+b[i]) mod 2
	OpFre        // Fre name: release the array
	OpPra        // Pra name: print the whole array
)

// argKind describes the second parameter of a statement.
type argKind uint8

const (
	argNone   argKind = iota // Op name
	argNumber                // Op name number
	argName                  // Op name name
)

type opInfo struct {
	name string
	arg  argKind
}

var opTable = [...]opInfo{
	OpInvalid: {"", argNone},
	OpMal:     {"Mal", argNumber},
	OpAss:     {"Ass", argNumber},
	OpInc:     {"Inc", argNumber},
	OpDec:     {"Dec", argNumber},
	OpPri:     {"Pri", argNumber},
	OpAdd:     {"Add", argName},
	OpSub:     {"Sub", argName},
	OpMul:     {"Mul", argName},
	OpAnd:     {"And", argName},
	OpXor:     {"Xor", argName},
	OpFre:     {"Fre", argNone},
	OpPra:     {"Pra", argNone},
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opTable))
	for op := OpMal; int(op) < len(opTable); op++ {
		m[opTable[op].name] = op
	}
	return m
}()

// LookupOp returns the operator spelled s. Operator names are case-sensitive.
func LookupOp(s string) (Op, bool) {
	op, ok := opByName[s]
	return op, ok
}

// String returns the operator's source spelling.
func (o Op) String() string {
	if int(o) >= len(opTable) || o == OpInvalid {
		return "Op(invalid)"
	}
	return opTable[o].name
}

// Fields returns the number of fields a statement with this operator has,
// including the operator itself.
func (o Op) Fields() int {
	if int(o) >= len(opTable) || o == OpInvalid {
		return 0
	}
	if opTable[o].arg == argNone {
		return MaxFields - 1
	}
	return MaxFields
}

func (o Op) argKind() argKind {
	if int(o) >= len(opTable) {
		return argNone
	}
	return opTable[o].arg
}
