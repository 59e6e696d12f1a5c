package expr

import (
	"errors"
	"strconv"

	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/dmath"
	"github.com/db47h/numexpr/numerr"
)

// unaryDispatch names the real and, where it exists, complex implementation
// backing a single one-argument named function (spec.md §4.3/4.4). Functions
// whose complex path follows from widening a real-domain violation (sqrt and
// ln of a negative real, arcsin/arccos/atanh outside their real domain) set
// widenOnDomainError so a real ErrUndefined retries through the complex
// identity instead of propagating.
type unaryDispatch struct {
	real               func(decimal.Decimal, dmath.Env) (decimal.Decimal, error)
	complex            func(decimal.ComplexDecimal, dmath.Env) (decimal.ComplexDecimal, error)
	widenOnDomainError bool
}

var unaryTable = map[string]unaryDispatch{
	"sin":    {real: dmath.Sin, complex: dmath.CSin},
	"cos":    {real: dmath.Cos, complex: dmath.CCos},
	"tan":    {real: dmath.Tan, complex: tanComplex},
	"arcsin": {real: dmath.Arcsin, complex: arcsinComplex, widenOnDomainError: true},
	"arccos": {real: dmath.Arccos, complex: arccosComplex, widenOnDomainError: true},
	"arctan": {real: dmath.Arctan, complex: dmath.CArctan},
	"sinh":   {real: dmath.Sinh, complex: dmath.CSinh},
	"cosh":   {real: dmath.Cosh, complex: dmath.CCosh},
	"tanh":   {real: dmath.Tanh, complex: tanhComplex},
	"asinh":  {real: dmath.Asinh},
	"acosh":  {real: dmath.Acosh},
	"atanh":  {real: dmath.Atanh},
	"exp":    {real: dmath.Exp, complex: dmath.CExp},
	"ln":     {real: dmath.Ln, complex: dmath.CLn, widenOnDomainError: true},
	"lg":     {real: dmath.Lg},
	"sqrt":   {real: dmath.Sqrt, complex: dmath.CSqrt, widenOnDomainError: true},
	"cbrt":   {real: dmath.Cbrt, complex: dmath.CCbrt},
}

// tanComplex and tanhComplex are the quotient identities dmath leaves
// uncomposed (it exports CSin/CCos and CSinh/CCosh but not the derived
// tangent forms).
func tanComplex(z decimal.ComplexDecimal, env dmath.Env) (decimal.ComplexDecimal, error) {
	s, err := dmath.CSin(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	c, err := dmath.CCos(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.CQuo(s, c)
}

func tanhComplex(z decimal.ComplexDecimal, env dmath.Env) (decimal.ComplexDecimal, error) {
	s, err := dmath.CSinh(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	c, err := dmath.CCosh(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.CQuo(s, c)
}

// arcsinComplex implements spec.md §4.4's closed form
// arcsin(z) = -i*ln(iz + sqrt(1-z^2)), used both for genuinely complex
// input and as the widened fallback when a real |x| > 1.
func arcsinComplex(z decimal.ComplexDecimal, env dmath.Env) (decimal.ComplexDecimal, error) {
	acc := z.Acc()
	one := decimal.FromReal(decimal.FromInt64(1, acc))
	i := decimal.FromComponents(decimal.FromInt64(0, acc), decimal.FromInt64(1, acc))
	negI := decimal.FromComponents(decimal.FromInt64(0, acc), decimal.FromInt64(-1, acc))

	z2, err := decimal.CMul(z, z)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	under, err := decimal.CSub(one, z2)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	root, err := dmath.CSqrt(under, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	iz, err := decimal.CMul(i, z)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	sum, err := decimal.CAdd(iz, root)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	lnSum, err := dmath.CLn(sum, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.CMul(negI, lnSum)
}

// arccosComplex uses the same pi/2 - arcsin(z) identity invtrig.go's real
// Arccos follows, widened to complex operands/results.
func arccosComplex(z decimal.ComplexDecimal, env dmath.Env) (decimal.ComplexDecimal, error) {
	asin, err := arcsinComplex(z, env)
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	halfPi, err := decimal.Quo(dmath.Pi(z.Acc()), decimal.FromInt64(2, z.Acc()))
	if err != nil {
		return decimal.ComplexDecimal{}, err
	}
	return decimal.CSub(decimal.FromReal(halfPi), asin)
}

// dispatchUnary applies a one-argument named function to v, following the
// real-path-first-widen-on-domain-error strategy (spec.md §4.3).
func dispatchUnary(name string, v Value, ctx *evalCtx) (Value, error) {
	d, ok := unaryTable[name]
	if !ok {
		return Value{}, numerr.Exprf(name, numerr.ErrUnknownFunction)
	}
	if !v.IsComplex() && d.real != nil {
		re, _ := v.AsReal()
		r, err := d.real(re, ctx.env)
		if err == nil {
			return Real(r), nil
		}
		if d.widenOnDomainError && d.complex != nil && errors.Is(err, numerr.ErrUndefined) {
			z, cerr := d.complex(decimal.FromReal(re), ctx.env)
			if cerr != nil {
				return Value{}, cerr
			}
			return Complex(z), nil
		}
		return Value{}, err
	}
	if d.complex == nil {
		return Value{}, numerr.Mathf(name, numerr.ErrUndefined)
	}
	z, err := d.complex(v.AsComplex(), ctx.env)
	if err != nil {
		return Value{}, err
	}
	return Complex(z), nil
}

// asNonNegUint reports whether d is representable as a nonnegative integer
// fitting in a uint64, for fact's divide-and-conquer fast path.
func asNonNegUint(d decimal.Decimal) (uint64, bool) {
	if d.Sign() < 0 {
		return 0, false
	}
	fl := decimal.Floor(d)
	if !decimal.Equal(fl, d) {
		return 0, false
	}
	n, err := strconv.ParseUint(fl.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// factValue implements fact(x): the binary-splitting fast path for a
// nonnegative integer, else gamma(x+1) (spec.md §4.4: "gamma(x) = fact(x-1)").
func factValue(d decimal.Decimal, env dmath.Env) (decimal.Decimal, error) {
	if n, ok := asNonNegUint(d); ok {
		return dmath.Fact(n, env)
	}
	xp1, err := decimal.Add(d, decimal.FromInt64(1, d.Acc()))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return dmath.Gamma(xp1, env)
}

// negValue and absValue implement the private rewriter-internal functions
// (lexemeUnaryMinus, lexemeAbs) folded in by rewritePass1.
func negValue(v Value) Value {
	if v.IsComplex() {
		return Complex(decimal.CNeg(v.AsComplex()))
	}
	re, _ := v.AsReal()
	return Real(decimal.Neg(re))
}

func absValue(v Value, ctx *evalCtx) (Value, error) {
	if !v.IsComplex() {
		re, _ := v.AsReal()
		return Real(decimal.Abs(re)), nil
	}
	m, err := dmath.CAbs(v.AsComplex(), ctx.env)
	if err != nil {
		return Value{}, err
	}
	return Real(m), nil
}

// applyFunction dispatches every prefix-function and '!' lexeme spec.md
// §4.5's closed token table names, operating on the tagged Value union.
func applyFunction(name string, args []Value, ctx *evalCtx) (Value, error) {
	switch name {
	case lexemeUnaryMinus:
		return negValue(args[0]), nil
	case lexemeAbs, "abs":
		return absValue(args[0], ctx)
	case "!":
		return factValue2(args[0], ctx)
	case "fact":
		re, ok := args[0].AsReal()
		if !ok {
			return Value{}, numerr.Mathf("fact", numerr.ErrUndefined)
		}
		r, err := factValue(re, ctx.env)
		if err != nil {
			return Value{}, err
		}
		return Real(r), nil
	case "gamma":
		re, ok := args[0].AsReal()
		if !ok {
			return Value{}, numerr.Mathf("gamma", numerr.ErrUndefined)
		}
		r, err := dmath.Gamma(re, ctx.env)
		if err != nil {
			return Value{}, err
		}
		return Real(r), nil
	case "floor":
		if args[0].IsComplex() {
			return Complex(decimal.CFloor(args[0].AsComplex())), nil
		}
		re, _ := args[0].AsReal()
		return Real(decimal.Floor(re)), nil
	case "ceil":
		if args[0].IsComplex() {
			return Complex(decimal.CCeil(args[0].AsComplex())), nil
		}
		re, _ := args[0].AsReal()
		return Real(decimal.Ceil(re)), nil
	case "sgn":
		if args[0].IsComplex() {
			z, err := dmath.CSgn(args[0].AsComplex(), ctx.env)
			if err != nil {
				return Value{}, err
			}
			return Complex(z), nil
		}
		re, _ := args[0].AsReal()
		return Real(decimal.Sgn(re)), nil
	case "conj":
		if args[0].IsComplex() {
			return Complex(decimal.Conj(args[0].AsComplex())), nil
		}
		return args[0], nil
	case "re":
		return Real(decimal.CRe(args[0].AsComplex())), nil
	case "im":
		return Real(decimal.CIm(args[0].AsComplex())), nil
	case "arg":
		a, err := dmath.CArg(args[0].AsComplex(), ctx.env)
		if err != nil {
			return Value{}, err
		}
		return Real(a), nil
	case "log":
		base, ok1 := args[0].AsReal()
		x, ok2 := args[1].AsReal()
		if !ok1 || !ok2 {
			return Value{}, numerr.Mathf("log", numerr.ErrUndefined)
		}
		r, err := dmath.Log(x, base, ctx.env)
		if err != nil {
			return Value{}, err
		}
		return Real(r), nil
	case "f", "g":
		return ctx.callBinding(name, args[0])
	}
	return dispatchUnary(name, args[0], ctx)
}

// factValue2 backs the postfix '!' operator, identical to the "fact" named
// function.
func factValue2(v Value, ctx *evalCtx) (Value, error) {
	re, ok := v.AsReal()
	if !ok {
		return Value{}, numerr.Mathf("!", numerr.ErrUndefined)
	}
	r, err := factValue(re, ctx.env)
	if err != nil {
		return Value{}, err
	}
	return Real(r), nil
}

// applyBinary dispatches the four arithmetic infix operators plus implicit
// multiplication and power, widening to complex whenever either operand is
// complex.
func applyBinary(lexeme string, a, b Value, ctx *evalCtx) (Value, error) {
	if !a.IsComplex() && !b.IsComplex() {
		x, _ := a.AsReal()
		y, _ := b.AsReal()
		var r decimal.Decimal
		var err error
		switch lexeme {
		case "+":
			r, err = decimal.Add(x, y)
		case "-":
			r, err = decimal.Sub(x, y)
		case "*", "&":
			r, err = decimal.Mul(x, y)
		case "/":
			r, err = decimal.Quo(x, y)
		case "^":
			r, err = dmath.Pow(x, y, ctx.env)
			if err != nil && errors.Is(err, numerr.ErrUndefined) {
				// Negative base, non-integer exponent, no real root
				// (dmath.Pow's branch 6): spec.md §4.4 branch 5 says to
				// rotate by |b|*pi instead and take the principal complex
				// root.
				z, cerr := dmath.CPow(decimal.FromReal(x), decimal.FromReal(y), ctx.env)
				if cerr != nil {
					return Value{}, cerr
				}
				return Complex(z), nil
			}
		default:
			return Value{}, numerr.Exprf(lexeme, numerr.ErrUnknownFunction)
		}
		if err != nil {
			return Value{}, err
		}
		return Real(r), nil
	}

	zx, zy := a.AsComplex(), b.AsComplex()
	var z decimal.ComplexDecimal
	var err error
	switch lexeme {
	case "+":
		z, err = decimal.CAdd(zx, zy)
	case "-":
		z, err = decimal.CSub(zx, zy)
	case "*", "&":
		z, err = decimal.CMul(zx, zy)
	case "/":
		z, err = decimal.CQuo(zx, zy)
	case "^":
		z, err = dmath.CPow(zx, zy, ctx.env)
	default:
		return Value{}, numerr.Exprf(lexeme, numerr.ErrUnknownFunction)
	}
	if err != nil {
		return Value{}, err
	}
	return Complex(z), nil
}
