package cdcl

// xorSegment is one link of a (possibly chained) XOR constraint: the
// variables it covers, all positive by this point, and its right-hand
// side bit.
type xorSegment struct {
	Vars []Var
	RHS  bool
}

// cutXOR splits an XOR of arbitrary arity into a chain of segments no
// wider than maxDirect+1, threading one fresh variable (from newVar)
// between consecutive segments to carry the running partial parity. A
// chain of length <= maxDirect needs no cutting at all and is returned
// as a single segment.
//
// maxDirect is the largest XOR solved without a chain variable at all,
// so segments carrying both an incoming and outgoing carry variable are,
// at most, maxDirect+1 wide. See DESIGN.md.
func cutXOR(vars []Var, rhs bool, maxDirect int, newVar func() Var) []xorSegment {
	if len(vars) <= maxDirect {
		return []xorSegment{{Vars: vars, RHS: rhs}}
	}

	var segments []xorSegment
	remaining := vars
	carry := VarUndef
	for len(remaining) > maxDirect {
		take := maxDirect - 1
		var segVars []Var
		if carry != VarUndef {
			segVars = append(segVars, carry)
			take = maxDirect - 2
		}
		if take > len(remaining) {
			take = len(remaining)
		}
		segVars = append(segVars, remaining[:take]...)
		remaining = remaining[take:]

		next := newVar()
		segVars = append(segVars, next)
		segments = append(segments, xorSegment{Vars: segVars, RHS: false})
		carry = next
	}

	var finalVars []Var
	if carry != VarUndef {
		finalVars = append(finalVars, carry)
	}
	finalVars = append(finalVars, remaining...)
	segments = append(segments, xorSegment{Vars: finalVars, RHS: rhs})
	return segments
}

// xorToClauses expands an n-variable XOR (vars[0] xor ... xor vars[n-1] =
// rhs) into the 2^(n-1) CNF clauses of odd parity relative to rhs (a
// ternary XOR expands to four 3-clauses: 2^(3-1) = 4). Every length-n
// bit pattern whose popcount parity disagrees with rhs blocks exactly
// one satisfying assignment of the XOR; the resulting clause negates the
// literal for every variable the pattern assigns true.
func xorToClauses(vars []Var, rhs bool) [][]Lit {
	n := uint(len(vars))
	rhsBit := 0
	if rhs {
		rhsBit = 1
	}
	var clauses [][]Lit
	total := uint(1) << n
	for pattern := uint(0); pattern < total; pattern++ {
		if popcount(pattern)%2 == rhsBit {
			continue // this assignment satisfies the XOR; no clause needed
		}
		lits := make([]Lit, n)
		for i := uint(0); i < n; i++ {
			bitSet := pattern&(1<<i) != 0
			lits[i] = vars[i].SignedLit(bitSet)
		}
		clauses = append(clauses, lits)
	}
	return clauses
}

func popcount(x uint) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}
