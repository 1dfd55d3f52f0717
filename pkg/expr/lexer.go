package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

var tokenNames = map[tokenKind]string{
	tokEOF:    "end of input",
	tokNumber: "number",
	tokIdent:  "identifier",
	tokPlus:   "'+'",
	tokMinus:  "'-'",
	tokStar:   "'*'",
	tokSlash:  "'/'",
	tokCaret:  "'^'",
	tokLParen: "'('",
	tokRParen: "')'",
	tokComma:  "','",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	// pos is the 0-based rune offset of the token's first character.
	pos  int
	text string
	num  float64
}

func (t token) describe() string {
	switch t.kind {
	case tokNumber, tokIdent:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}

var punctuation = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

// tokenize splits src into tokens terminated by a tokEOF token whose
// position is the rune length of src.
func tokenize(src string) ([]token, error) {
	runes := []rune(src)
	var toks []token
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			toks = append(toks, token{kind: tokCaret, pos: i, text: "**"})
			i += 2
		case punctuation[r] != tokEOF:
			toks = append(toks, token{kind: punctuation[r], pos: i, text: string(r)})
			i++
		case isDigit(r) || (r == '.' && i+1 < len(runes) && isDigit(runes[i+1])):
			start := i
			i = scanNumber(runes, i)
			text := string(runes[start:i])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &ParseError{Pos: start, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: text, num: v})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, pos: start, text: string(runes[start:i])})
		default:
			return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

// scanNumber returns the end offset of the numeric literal starting at i:
// digits, an optional fraction and an optional exponent. An 'e' that is
// not followed by exponent digits is left for the identifier scanner.
func scanNumber(runes []rune, i int) int {
	for i < len(runes) && isDigit(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '.' {
		i++
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		if j < len(runes) && isDigit(runes[j]) {
			for j < len(runes) && isDigit(runes[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
