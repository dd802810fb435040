package cdcl

import "github.com/pkg/errors"

// Error kinds. Outer-API calls wrap these with github.com/pkg/errors so
// the caller's %+v retains a stack trace to the call site.
var (
	// ErrRefuted is returned by any state-changing call once the solver
	// has become terminally UNSAT. It is sticky: every subsequent call
	// returns it without effect.
	ErrRefuted = errors.New("cdcl: solver is terminally unsatisfiable")

	// ErrTooManyVars is raised when a clause mentions a variable beyond
	// nVarsOuter.
	ErrTooManyVars = errors.New("cdcl: variable outside declared universe")

	// ErrTooLongClause is raised when a clause has >= 2^28 literals.
	ErrTooLongClause = errors.New("cdcl: clause length exceeds 2^28")

	// ErrMalformedInput covers garbage DIMACS lines and out-of-range
	// literals.
	ErrMalformedInput = errors.New("cdcl: malformed input")

	// ErrConfigPrecondition is returned when an operation is attempted
	// after a configuration precondition was violated, e.g. adding
	// clauses after a non-reversible simplification.
	ErrConfigPrecondition = errors.New("cdcl: configuration precondition violated")

	// ErrSinkUnavailable is returned when a required-on external sink
	// (e.g. SQL statistics) is unavailable.
	ErrSinkUnavailable = errors.New("cdcl: required sink unavailable")
)

// TooLongClauseError reports the offending length alongside ErrTooLongClause.
type TooLongClauseError struct {
	Len int
}

func (e *TooLongClauseError) Error() string {
	return errors.Wrapf(ErrTooLongClause, "length %d", e.Len).Error()
}

func (e *TooLongClauseError) Unwrap() error { return ErrTooLongClause }

// TooManyVarsError reports the offending variable alongside ErrTooManyVars.
type TooManyVarsError struct {
	Var    Var
	NVars  int
}

func (e *TooManyVarsError) Error() string {
	return errors.Wrapf(ErrTooManyVars, "var %d >= nVarsOuter %d", e.Var, e.NVars).Error()
}

func (e *TooManyVarsError) Unwrap() error { return ErrTooManyVars }
