package expr

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/db47h/numexpr/numerr"
)

// numberPattern matches the longest numeric-literal prefix at the current
// scan position (spec.md §6's decimal grammar, reused here rather than
// imported from package decimal to keep the tokenizer's scan loop
// self-contained; decimal.Parse re-validates the matched lexeme later).
var numberPattern = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// identPattern matches the longest run of ASCII letters, the set from which
// function/constant names are drawn.
var identPattern = regexp.MustCompile(`^[A-Za-z]+`)

// Tokenize scans s into a Token stream (spec.md §4.5). It does not perform
// the rewriter's structural passes; it only classifies lexemes and attaches
// position/arity/priority metadata from the closed operator table.
func Tokenize(s string) ([]Token, error) {
	norm, offsets := normalizeInput(s)
	var toks []Token
	i := 0
	for i < len(norm) {
		c := norm[i]
		switch {
		case c == ' ':
			i++
		case c >= '0' && c <= '9' || c == '.':
			m := numberPattern.FindString(norm[i:])
			if m == "" {
				return nil, &numerr.SyntaxError{Pos: offsets[i], Msg: "malformed numeric literal"}
			}
			toks = append(toks, Token{Lexeme: m, Class: ClassNumber, Pos: offsets[i]})
			i += len(m)
		case unicode.IsLetter(rune(c)):
			m := identPattern.FindString(norm[i:])
			tok, err := identifierToken(m, offsets[i])
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += len(m)
		case c == '(' || c == ')' || c == ',' || c == '|':
			class := ClassParen
			if c == ',' {
				class = ClassSep
			}
			toks = append(toks, Token{Lexeme: string(c), Class: class, Pos: offsets[i]})
			i++
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^' || c == '!':
			e, ok := operatorTable[string(c)]
			if !ok {
				return nil, &numerr.SyntaxError{Pos: offsets[i], Msg: "unsupported operator"}
			}
			toks = append(toks, Token{
				Lexeme: string(c), Class: ClassFunc,
				Priority: e.priority, Arity: e.arity, Position: e.position, Assoc: e.assoc,
				Pos: offsets[i],
			})
			i++
		default:
			return nil, &numerr.SyntaxError{Pos: offsets[i], Msg: "unrecognized character"}
		}
	}
	return toks, nil
}

// identifierToken classifies a scanned letter run as a constant, a
// known function name, or an error (spec.md §6: unreserved identifiers and
// any private sentinel lexeme are rejected).
func identifierToken(name string, pos int) (Token, error) {
	lower := strings.ToLower(name)
	if isPrivateLexeme(lower) {
		return Token{}, &numerr.SyntaxError{Pos: pos, Msg: "reserved internal token in user input"}
	}
	if namedConstants[lower] {
		return Token{Lexeme: lower, Class: ClassNumber, Pos: pos}, nil
	}
	if lower == "log" {
		e := operatorTable["log"]
		return Token{Lexeme: lower, Class: ClassFunc, Priority: e.priority, Arity: e.arity, Position: e.position, Assoc: e.assoc, Pos: pos}, nil
	}
	if prefixFuncNames[lower] {
		e := prefixEntry()
		return Token{Lexeme: lower, Class: ClassFunc, Priority: e.priority, Arity: e.arity, Position: e.position, Assoc: e.assoc, Pos: pos}, nil
	}
	return Token{}, &numerr.SyntaxError{Pos: pos, Msg: "unknown identifier: " + name}
}

// normalizeInput strips whitespace, maps "**" to "^" and "[cdot]" to "*"
// (spec.md §4.5), and returns the normalized string together with a slice
// mapping each normalized byte index back to its 1-based position in the
// original input, for syntax-error reporting.
func normalizeInput(s string) (string, []int) {
	var b strings.Builder
	var offsets []int
	i := 0
	for i < len(s) {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], "**") {
			b.WriteByte('^')
			offsets = append(offsets, i+1)
			i += 2
			continue
		}
		if strings.HasPrefix(s[i:], "[cdot]") {
			b.WriteByte('*')
			offsets = append(offsets, i+1)
			i += len("[cdot]")
			continue
		}
		b.WriteByte(s[i])
		offsets = append(offsets, i+1)
		i++
	}
	return b.String(), offsets
}
