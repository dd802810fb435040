// Package dimacs implements the DIMACS CNF/XOR file format and the DIMACS
// solution-line format: a byte-at-a-time reader (readInt, parseHeader,
// the 'c'-comment / 'p'-header / clause-line dispatch loop) that also
// accepts the 'x' extended-XOR line, and loads straight into a
// *cdcl.Solver rather than building an intermediate in-core document,
// since DIMACS file I/O is an external collaborator with no in-core
// representation to populate.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cdcl "github.com/crillab/cdclsat"
	"github.com/pkg/errors"
)

// CNF is a fully parsed DIMACS document: the declared variable count plus
// every ordinary and XOR clause, each in outside (1-based, signed)
// numbering, exactly as the outer API's AddClause/AddXorClause expect.
type CNF struct {
	NbVars  int
	Clauses [][]int32
	Xors    [][]int32
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads a single (possibly negative) integer from r, skipping
// leading whitespace; b holds the last byte read.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "dimacs: could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "dimacs: cannot read int")
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("dimacs: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	return res * neg, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, 0, errors.Wrap(err, "dimacs: cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != "p" {
		return 0, 0, errors.Errorf("dimacs: invalid header %q", line)
	}
	nbVars, convErr := strconv.Atoi(fields[2])
	if convErr != nil {
		return 0, 0, errors.Errorf("dimacs: nbvars not an int: %q", fields[2])
	}
	nbClauses, convErr = strconv.Atoi(fields[3])
	if convErr != nil {
		return 0, 0, errors.Errorf("dimacs: nbclauses not an int: %q", fields[3])
	}
	return nbVars, nbClauses, nil
}

// Parse reads a DIMACS CNF document (comment 'c' lines, a 'p cnf nbvars
// nbclauses' header, ordinary zero-terminated clause lines, and
// 'x'-prefixed zero-terminated XOR lines).
func Parse(f io.Reader) (*CNF, error) {
	r := bufio.NewReader(f)
	var cnf CNF

	b, err := r.ReadByte()
	for err == nil {
		switch {
		case b == 'c':
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		case b == 'p':
			if err = r.UnreadByte(); err != nil {
				return nil, errors.Wrap(err, "dimacs: cannot read header")
			}
			cnf.NbVars, _, err = parseHeader(r)
			if err != nil {
				return nil, err
			}
			b, err = r.ReadByte()
			continue
		case b == 'x':
			if b, err = r.ReadByte(); err != nil {
				return nil, errors.Wrap(err, "dimacs: cannot parse xor line")
			}
			vars, rerr := readTerminatedInts(&b, r)
			if rerr != nil {
				return nil, errors.Wrap(rerr, "dimacs: cannot parse xor line")
			}
			if err := checkVars(vars, cnf.NbVars); err != nil {
				return nil, err
			}
			cnf.Xors = append(cnf.Xors, vars)
		case isSpace(b):
			// blank line between records
		default:
			// b already holds the first byte of the clause; readInt's
			// contract is to treat *b as the last byte read, so no extra
			// buffering is needed before handing it to readTerminatedInts.
			lits, rerr := readTerminatedInts(&b, r)
			if rerr != nil {
				return nil, errors.Wrap(rerr, "dimacs: cannot parse clause")
			}
			if err := checkVars(lits, cnf.NbVars); err != nil {
				return nil, err
			}
			cnf.Clauses = append(cnf.Clauses, lits)
			continue
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, errors.Wrap(err, "dimacs: read error")
	}
	return &cnf, nil
}

func readTerminatedInts(b *byte, r *bufio.Reader) ([]int32, error) {
	var out []int32
	for {
		val, err := readInt(b, r)
		if err == io.EOF {
			if len(out) != 0 {
				return nil, errors.New("unfinished clause at EOF")
			}
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if val == 0 {
			return out, nil
		}
		out = append(out, int32(val))
	}
}

func checkVars(lits []int32, nbVars int) error {
	for _, l := range lits {
		v := l
		if v < 0 {
			v = -v
		}
		if int(v) > nbVars {
			return errors.Errorf("dimacs: literal %d exceeds declared %d variables", l, nbVars)
		}
	}
	return nil
}

// Load streams a parsed CNF straight into an already-constructed Solver:
// NbVars fresh outside variables, then every ordinary and XOR clause in
// file order. Returns the solver's post-load ok flag.
func Load(cnf *CNF, s *cdcl.Solver) (bool, error) {
	s.NewVars(cnf.NbVars)
	for _, lits := range cnf.Clauses {
		ok, err := s.AddClause(lits, false)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	for _, vars := range cnf.Xors {
		ok, err := s.AddXorClause(vars, false)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// WriteSolution writes the DIMACS solution line format: an
// "s SATISFIABLE"/"s UNSATISFIABLE"/"s INDETERMINATE" status line,
// followed for SAT by "v <lit>* 0" blocks (1-based, signed, zero
// terminated), model indexed by outside variable as Solver.GetModel
// returns it.
func WriteSolution(w io.Writer, verdict cdcl.Verdict, model []cdcl.TriVal) error {
	bw := bufio.NewWriter(w)
	switch verdict {
	case cdcl.VerdictSat:
		if _, err := fmt.Fprintln(bw, "s SATISFIABLE"); err != nil {
			return err
		}
		fmt.Fprint(bw, "v")
		for i, val := range model {
			lit := int32(i + 1)
			if val == cdcl.False {
				lit = -lit
			}
			fmt.Fprintf(bw, " %d", lit)
		}
		fmt.Fprintln(bw, " 0")
	case cdcl.VerdictUnsat:
		fmt.Fprintln(bw, "s UNSATISFIABLE")
	default:
		fmt.Fprintln(bw, "s INDETERMINATE")
	}
	return bw.Flush()
}

// Solution is a parsed DIMACS solution stream.
type Solution struct {
	Verdict cdcl.Verdict
	Model   []cdcl.TriVal // 1-based external index i lives at Model[i-1]
}

// ParseSolution reads back the format WriteSolution emits: a stream with
// lines 's SATISFIABLE|UNSATISFIABLE|INDETERMINATE' and zero-terminated
// 'v <int>*' lines.
func ParseSolution(r io.Reader) (*Solution, error) {
	sc := bufio.NewScanner(r)
	sol := &Solution{Verdict: cdcl.VerdictUndef}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "s":
			if len(fields) < 2 {
				return nil, errors.Errorf("dimacs: malformed status line %q", line)
			}
			switch fields[1] {
			case "SATISFIABLE":
				sol.Verdict = cdcl.VerdictSat
			case "UNSATISFIABLE":
				sol.Verdict = cdcl.VerdictUnsat
			default:
				sol.Verdict = cdcl.VerdictUndef
			}
		case "v":
			for _, f := range fields[1:] {
				n, err := strconv.Atoi(f)
				if err != nil {
					return nil, errors.Errorf("dimacs: malformed literal %q in v line", f)
				}
				if n == 0 {
					break
				}
				idx := n
				val := cdcl.True
				if idx < 0 {
					idx = -idx
					val = cdcl.False
				}
				for len(sol.Model) < idx {
					sol.Model = append(sol.Model, cdcl.Undef)
				}
				sol.Model[idx-1] = val
			}
		default:
			return nil, errors.Errorf("dimacs: unrecognized solution line %q", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "dimacs: scan error")
	}
	return sol, nil
}
