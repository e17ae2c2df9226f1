package notation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token categories of the grammar notation.
const (
	tokEOF int = iota
	tokEOL
	tokArrow
	tokBar
	tokEmpty
	tokQuoted
	tokIdent
)

var tokenNames = map[int]string{
	tokEOF:    "end of input",
	tokEOL:    "end of rule",
	tokArrow:  "arrow",
	tokBar:    "'|'",
	tokEmpty:  "ε",
	tokQuoted: "quoted symbol",
	tokIdent:  "identifier",
}

// token is a scanned lexeme together with its category and position.
type token struct {
	kind   int
	lexeme string
	line   int
	col    int
}

func (t token) String() string {
	if t.kind == tokEOF || t.kind == tokEOL {
		return tokenNames[t.kind]
	}
	return fmt.Sprintf("%s %q", tokenNames[t.kind], t.lexeme)
}

// Characters outside of the scanner's byte-oriented patterns are rewritten
// to their ASCII forms before scanning.
var normalizer = strings.NewReplacer("→", "->", "ε", "%empty", "⟶", "->")

var lexerOnce sync.Once
var theLexer *lexmachine.Lexer
var lexerErr error

// lexer returns the compiled lexer for the notation. It is compiled once and
// shared; scanners created from it are independent of each other.
func lexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`#[^\n]*`), skip)
		lx.Add([]byte(`( |\t|\r)+`), skip)
		lx.Add([]byte(`\n`), makeToken(tokEOL))
		lx.Add([]byte(literal(";")), makeToken(tokEOL))
		lx.Add([]byte(literal("->")), makeToken(tokArrow))
		lx.Add([]byte(literal("::=")), makeToken(tokArrow))
		lx.Add([]byte(literal("|")), makeToken(tokBar))
		lx.Add([]byte(`%empty`), makeToken(tokEmpty))
		lx.Add([]byte(`'[^']*'`), makeToken(tokQuoted))
		lx.Add([]byte(`"[^"]*"`), makeToken(tokQuoted))
		lx.Add([]byte(`([a-z]|[A-Z]|[0-9]|_)+`), makeToken(tokIdent))
		if err := lx.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			lexerErr = err
			return
		}
		theLexer = lx
	})
	return theLexer, lexerErr
}

// literal escapes every character of a literal string for use as a pattern.
func literal(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action which wraps a scanned match into a token.
func makeToken(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(kind, string(m.Bytes), m), nil
	}
}

// tokenize scans the complete input. Scanning stops at the first unrecognized
// input, which is reported as an error.
func tokenize(input string) ([]token, error) {
	lx, err := lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(normalizer.Replace(input)))
	if err != nil {
		return nil, err
	}
	var tokens []token
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("unexpected input at line %d, column %d",
					ui.FailLine, ui.FailColumn)
			}
			return nil, err
		}
		if eof {
			break
		}
		t := tok.(*lexmachine.Token)
		tokens = append(tokens, token{
			kind:   t.Type,
			lexeme: string(t.Lexeme),
			line:   t.StartLine,
			col:    t.StartColumn,
		})
	}
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens, nil
}
