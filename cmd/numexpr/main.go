// Command numexpr is a minimal read-eval-print loop over package expr: it
// reads one expression per line from stdin, evaluates it against a shared
// dconfig.Config, and prints the result or the first error encountered.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/db47h/numexpr/dconfig"
	"github.com/db47h/numexpr/decimal"
	"github.com/db47h/numexpr/expr"
)

func main() {
	acc := flag.Uint("acc", decimal.DefaultAcc, "significant-digit accuracy")
	check := flag.Bool("check", false, "syntax-check only, do not evaluate")
	flag.Parse()

	cfg := dconfig.New(dconfig.WithAcc(*acc))

	var bindings expr.Bindings
	evalMode := expr.Calc
	if *check {
		evalMode = expr.SyntaxCheck
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if handled := handleDirective(line, &bindings); handled {
			continue
		}
		res, err := expr.Eval(line, cfg, expr.Value{}, false, bindings, evalMode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if res.IsCheck {
			fmt.Println(res.Pretty)
			continue
		}
		fmt.Println(res.Value.String())
	}
}

// handleDirective recognizes the two REPL-only commands that bind f(x) and
// g(x) bodies; everything else is forwarded to expr.Eval as an expression.
func handleDirective(line string, bindings *expr.Bindings) bool {
	const fPrefix, gPrefix = "f=", "g="
	switch {
	case len(line) > len(fPrefix) && line[:len(fPrefix)] == fPrefix:
		bindings.F = line[len(fPrefix):]
		return true
	case len(line) > len(gPrefix) && line[:len(gPrefix)] == gPrefix:
		bindings.G = line[len(gPrefix):]
		return true
	}
	return false
}
