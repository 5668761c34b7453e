package asm

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota + 1
	identifierCode
	registerCode
	numberCode
	colonCode
	commaCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	registerToken   = parsly.NewToken(registerCode, "Register", &registerMatcher{})
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	colonToken      = parsly.NewToken(colonCode, ":", matcher.NewByte(':'))
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
)

// identifierMatcher matches labels and mnemonics
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || !(isLetter(input[pos]) || input[pos] == '_') {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size && isIdentifier(input[i]); i++ {
		matched++
	}
	return matched
}

// registerMatcher matches d0..d7
type registerMatcher struct{}

func (m *registerMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos+1 >= size || (input[pos] != 'd' && input[pos] != 'D') {
		return 0
	}
	if input[pos+1] < '0' || input[pos+1] > '7' {
		return 0
	}
	if pos+2 < size && isIdentifier(input[pos+2]) {
		return 0
	}
	return 2
}

// numberMatcher matches an optionally signed decimal integer
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	i := pos
	if i < size && (input[i] == '-' || input[i] == '+') {
		i++
	}
	digits := 0
	for ; i < size && isDigit(input[i]); i++ {
		digits++
	}
	if digits == 0 {
		return 0
	}
	return i - pos
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentifier(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_'
}
