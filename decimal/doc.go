// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package decimal implements arbitrary-precision decimal and complex
floating-point arithmetic.

Unlike big.Float, a Decimal represents its value exactly as

	sign × mantissa × 10**power

with mantissa an arbitrary-sized integer (backed by math/big.Int) and power a
signed exponent. There are no binary rounding artifacts, no NaN and no
Infinity: a value is either finite or it is an error.

A Decimal is immutable. Every constructor and every operation returns a
freshly allocated value; none of them ever modify an existing Decimal. This is
a deliberate departure from the receiver-as-output-parameter style of
big.Float (z.Add(x, y)): callers never need to worry about aliasing a result
with one of its operands, and a Decimal can be shared freely between
goroutines without synchronization.

The zero value of Decimal is not meaningful on its own; always obtain a
Decimal through one of the FromXxx constructors or through an arithmetic
operation.

Construction:

	d, err := decimal.Parse("3.1400", 30)     // from a decimal literal string
	d  = decimal.FromInt64(42, 30)            // from an int64
	d  = decimal.FromBigInt(big.NewInt(7), 30) // from a *big.Int

Operations are free functions rather than methods of the form z.Op(x, y),
since there is no receiver to reuse:

	sum, err := decimal.Add(a, b)
	pow, err := dmath.Pow(a, b)

Every operation takes its operands' significant-digit budget (acc) from the
Config supplied by the caller (see package dconfig); acc is never read from a
hidden package-level global.

ComplexDecimal pairs two Decimals sharing a declared precision and supports
the same arithmetic and transcendental operations (package dmath), lifted
according to the usual complex-analytic identities.
*/
package decimal
