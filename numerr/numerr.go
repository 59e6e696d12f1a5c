// Package numerr defines the typed error taxonomy shared by the decimal,
// dmath and expr packages.
//
// Every operation in this module either returns a valid value or a non-nil
// error from this package; there are no sentinel values such as NaN. Errors
// are never recovered internally except at the expr package's Eval boundary,
// which wraps the first failing sub-computation into a *SyntaxError carrying
// the offending character's 1-based position in the original input.
package numerr

import "errors"

// Sentinel errors, compared with errors.Is. Each corresponds to one row of
// the error taxonomy in the specification.
var (
	// ErrInputRange reports a numeric literal or exponent outside the
	// configured safety range.
	ErrInputRange = errors.New("decimal: input out of range")

	// ErrInputFormat reports a malformed decimal, complex or expression
	// literal.
	ErrInputFormat = errors.New("decimal: invalid input format")

	// ErrInputTooLong reports input exceeding Config.MaxInputLen.
	ErrInputTooLong = errors.New("decimal: input too long")

	// ErrOverflow reports a result whose power exceeds Config.MaxExponent.
	ErrOverflow = errors.New("decimal: overflow")

	// ErrDivByZero reports division where the divisor is zero.
	ErrDivByZero = errors.New("decimal: division by zero")

	// ErrUndefined reports a mathematically undefined result, e.g. arg(0),
	// ln(0), 0^0, or tan at an odd multiple of pi/2.
	ErrUndefined = errors.New("decimal: undefined result")

	// ErrUnreliable reports a bounded series or range reduction that failed
	// to converge within its iteration cap.
	ErrUnreliable = errors.New("decimal: result did not converge reliably")

	// ErrFactorialRange reports a factorial/gamma argument beyond
	// Config.MaxFactorialN.
	ErrFactorialRange = errors.New("decimal: factorial argument out of range")

	// ErrUnknownFunction reports a call to an unbound user-defined function
	// (f or g with no stored body).
	ErrUnknownFunction = errors.New("expr: unknown function")

	// ErrPrivateToken reports a rewriter-internal sentinel token
	// (unary-minus N, abs-function A) appearing directly in user input.
	ErrPrivateToken = errors.New("expr: reserved token in input")
)

// SyntaxError reports a parse failure together with the 1-based rune
// position in the original expression at which it was detected.
type SyntaxError struct {
	Pos int    // 1-based character position in the original input
	Msg string // human-readable description
}

func (e *SyntaxError) Error() string {
	return "expr: syntax error at position " + itoa(e.Pos) + ": " + e.Msg
}

// itoa avoids importing strconv solely for this error path's formatting.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Component-prefixed wraps, following the teacher's "component prefix +
// English description" convention for user-visible messages (spec.md §7).
func wrap(component, msg string, err error) error {
	return &componentError{component: component, msg: msg, err: err}
}

type componentError struct {
	component string
	msg       string
	err       error
}

func (e *componentError) Error() string {
	if e.msg == "" {
		return e.component + ": " + e.err.Error()
	}
	return e.component + ": " + e.msg + ": " + e.err.Error()
}

func (e *componentError) Unwrap() error { return e.err }

// Decimalf wraps err with the "decimal" component prefix and a message.
func Decimalf(msg string, err error) error { return wrap("decimal", msg, err) }

// Complexf wraps err with the "complex" component prefix and a message.
func Complexf(msg string, err error) error { return wrap("complex", msg, err) }

// Mathf wraps err with the "math" component prefix and a message.
func Mathf(msg string, err error) error { return wrap("math", msg, err) }

// Exprf wraps err with the "expr" component prefix and a message.
func Exprf(msg string, err error) error { return wrap("expr", msg, err) }
