package cdcl

// Var is an internal variable identifier. Vars are dense and start at 0;
// CNF variable 1 is encoded as Var(0).
type Var int32

// Lit is a literal: 2*v for the positive occurrence of v, 2*v+1 for the
// negative one. Negation is bit 0 flip.
type Lit int32

// LitUndef is the sentinel "no literal" value.
const LitUndef Lit = -1

// VarUndef is the sentinel "no variable" value.
const VarUndef Var = -1

// IntToLit converts a signed DIMACS literal (no zero) to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a 1-based DIMACS variable number to a Var.
func IntToVar(i int32) Var {
	return Var(i - 1)
}

// Lit returns the positive literal for v.
func (v Var) Lit() Lit { return Lit(v * 2) }

// SignedLit returns the negative literal for v if neg, the positive one otherwise.
func (v Var) SignedLit(neg bool) Lit {
	if neg {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable underlying l.
func (l Lit) Var() Var { return Var(l / 2) }

// Int returns the signed DIMACS literal equivalent to l.
func (l Lit) Int() int32 {
	res := int32(l/2 + 1)
	if l&1 == 1 {
		return -res
	}
	return res
}

// IsPositive is true iff l is the positive occurrence of its variable.
func (l Lit) IsPositive() bool { return l&1 == 0 }

// Negation returns the complementary literal of l.
func (l Lit) Negation() Lit { return l ^ 1 }

// TriVal is a ternary truth value.
type TriVal int8

const (
	// Undef means the variable currently has no binding.
	Undef TriVal = iota
	// True means the variable (or literal) is currently satisfied.
	True
	// False means the variable (or literal) is currently falsified.
	False
)

func (t TriVal) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undef"
	}
}

// Not lifts Boolean negation to TriVal.
func (t TriVal) Not() TriVal {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Undef
	}
}

// litValue turns a variable's TriVal binding into the truth value of a
// specific literal built on that variable (accounting for its sign).
func litValue(v TriVal, l Lit) TriVal {
	if v == Undef {
		return Undef
	}
	if l.IsPositive() {
		return v
	}
	return v.Not()
}

// boolToTri converts a Go bool into the corresponding TriVal.
func boolToTri(b bool) TriVal {
	if b {
		return True
	}
	return False
}

// RemovedKind classifies why a variable was taken out of the active
// universe.
type RemovedKind int8

const (
	// RemovedNone marks an active variable.
	RemovedNone RemovedKind = iota
	// RemovedEliminated marks a variable eliminated by the occurrence simplifier.
	RemovedEliminated
	// RemovedReplaced marks a variable replaced by an equivalent literal.
	RemovedReplaced
	// RemovedDecomposed marks a variable isolated into a solved-away component.
	RemovedDecomposed
)

func (r RemovedKind) String() string {
	switch r {
	case RemovedEliminated:
		return "eliminated"
	case RemovedReplaced:
		return "replaced"
	case RemovedDecomposed:
		return "decomposed"
	default:
		return "none"
	}
}
