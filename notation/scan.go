package notation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/cadenza"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types. Single character literals use their character code.
const (
	EOF cadenza.TokType = -(iota + 1)
	ID
	VAR
	NUM
)

// literals are the single character tokens of the notation.
var literals = []string{"(", ")", "[", "]", "{", "}", "<", ">", "\\", "/",
	".", ",", "+", "&", "@", "^", "|", "-", "*", ":"}

var tokenIds map[string]int // token names to token types

func tokenName(t cadenza.TokType) string {
	switch t {
	case EOF:
		return "end of input"
	case ID:
		return "identifier"
	case VAR:
		return "variable"
	case NUM:
		return "number"
	}
	return fmt.Sprintf("'%c'", rune(t))
}

var lexer *lmAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

func theLexer() (*lmAdapter, error) {
	lexerOnce.Do(func() {
		tokenIds = map[string]int{"ID": int(ID), "VAR": int(VAR), "NUM": int(NUM)}
		for _, lit := range literals {
			tokenIds[lit] = int(lit[0])
		}
		init := func(lx *lexmachine.Lexer) {
			lx.Add([]byte(`\#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), makeToken("ID"))
			lx.Add([]byte(`\$([a-z]|[A-Z])+[0-9]*`), makeToken("VAR"))
			lx.Add([]byte(`\-?[0-9]+`), makeToken("NUM"))
			lx.Add([]byte(`( |\t|\n|\r)+`), skip)
		}
		tracer().Debugf("creating lexer")
		lexer, lexerErr = newLMAdapter(init, literals)
	})
	return lexer, lexerErr
}

// --- lexmachine adapter ----------------------------------------------------

type lmAdapter struct {
	Lexer *lexmachine.Lexer
}

// newLMAdapter creates a lexer from a set of rules installed by init and a
// list of literal lexemes. It returns an error if compiling the DFA failed.
func newLMAdapter(init func(*lexmachine.Lexer), literals []string) (*lmAdapter, error) {
	adapter := &lmAdapter{Lexer: lexmachine.NewLexer()}
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), makeToken(lit))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// tokenize scans the complete input. Unconsumable input is reported as a
// syntax error at the offending position.
func (lm *lmAdapter) tokenize(input string) ([]token, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []token
	for {
		tok, err, eof := s.Next()
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				return nil, &SyntaxError{
					Input: input,
					Span:  cadenza.Span{uint64(ui.StartTC), uint64(ui.FailTC)},
					Msg:   "unexpected character",
				}
			}
			return nil, err
		}
		if eof {
			break
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, token{
			kind:   cadenza.TokType(t.Type),
			lexeme: string(t.Lexeme),
			span:   cadenza.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
		})
	}
	n := uint64(len(input))
	toks = append(toks, token{kind: EOF, span: cadenza.Span{n, n}})
	return toks, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(name string) lexmachine.Action {
	id, ok := tokenIds[name]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", name))
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Tokens ----------------------------------------------------------------

type token struct {
	kind   cadenza.TokType
	lexeme string
	span   cadenza.Span
}

var _ cadenza.Token = token{}

func (t token) TokType() cadenza.TokType { return t.kind }
func (t token) Lexeme() string           { return t.lexeme }
func (t token) Value() interface{}       { return t.lexeme }
func (t token) Span() cadenza.Span       { return t.span }
