// Package mysqlparser splits MySQL migration scripts into statements using the
// MySQL ANTLR lexer, so that semicolons inside strings, comments and compound
// statement bodies do not end a statement.
package mysqlparser

import (
	"regexp"
	"strings"

	"github.com/antlr4-go/antlr/v4"
	parser "github.com/gedhean/mysql-parser"
	"github.com/pkg/errors"
)

var delimiterPattern = regexp.MustCompile(`(?i)^\s*DELIMITER\s+(?P<DELIMITER>[^\s\\]+)\s*`)

// Statement is one statement of a script.
type Statement struct {
	// Text is the raw statement text including its terminating semicolon.
	// Statements ended by a custom delimiter get a plain semicolon instead.
	Text string
	// Line is the one-based line of the first significant token.
	Line int
	// Empty is set when the statement holds nothing but comments and semicolons.
	Empty bool
}

// SplitSQL splits a script into statements.
func SplitSQL(script string) ([]Statement, error) {
	lexer := parser.NewMySQLLexer(antlr.NewInputStream(script))
	listener := NewParseErrorListener(script)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(listener)

	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	stream.Fill()
	if listener.Err != nil {
		return nil, listener.Err
	}

	s := &splitter{stream: stream, tokens: stream.GetAllTokens()}
	if s.hasDelimiterStatement() {
		return s.splitWithDelimiters()
	}
	return s.splitOnSemicolons(), nil
}

// ExtractDelimiter returns the delimiter set by a DELIMITER statement.
func ExtractDelimiter(stmt string) (string, error) {
	match := delimiterPattern.FindStringSubmatch(stmt)
	index := delimiterPattern.SubexpIndex("DELIMITER")
	if index >= 0 && index < len(match) {
		return match[index], nil
	}
	return "", errors.Errorf("cannot extract delimiter from %q", stmt)
}

type splitter struct {
	stream *antlr.CommonTokenStream
	tokens []antlr.Token
}

// splitOnSemicolons ends a statement at every semicolon outside BEGIN ... END
// and CASE ... END.
func (s *splitter) splitOnSemicolons() []Statement {
	var result []Statement
	depth, start := 0, 0
	for i, token := range s.tokens {
		if token.GetChannel() != antlr.TokenDefaultChannel {
			continue
		}
		switch token.GetTokenType() {
		case parser.MySQLParserBEGIN_SYMBOL:
			if s.opensBlock(i) {
				depth++
			}
		case parser.MySQLParserCASE_SYMBOL:
			if s.neighbour(i, -1) != parser.MySQLParserEND_SYMBOL {
				depth++
			}
		case parser.MySQLParserEND_SYMBOL:
			if depth > 0 && s.closesBlock(i) {
				depth--
			}
		case parser.MySQLParserSEMICOLON_SYMBOL:
			if depth == 0 {
				result = append(result, s.statement(start, i, ""))
				start = i + 1
			}
		}
	}
	return s.appendTail(result, start)
}

// splitWithDelimiters honours DELIMITER statements, as used around trigger
// and procedure definitions.
func (s *splitter) splitWithDelimiters() ([]Statement, error) {
	var result []Statement
	delimiter := ";"
	start := 0
	for i := 0; i < len(s.tokens); {
		token := s.tokens[i]
		if token.GetTokenType() == antlr.TokenEOF {
			break
		}
		if token.GetChannel() != antlr.TokenDefaultChannel {
			i++
			continue
		}

		if token.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			next, text := s.restOfLine(i)
			d, err := ExtractDelimiter(text)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", token.GetLine())
			}
			delimiter, start, i = d, next, next
			continue
		}

		if delimiter == ";" {
			if token.GetTokenType() == parser.MySQLParserSEMICOLON_SYMBOL {
				result = append(result, s.statement(start, i, ""))
				start = i + 1
			}
			i++
			continue
		}

		if end, ok := s.matchDelimiter(i, delimiter); ok {
			result = append(result, s.statement(start, i-1, ";"))
			start, i = end, end
			continue
		}
		i++
	}
	return s.appendTail(result, start), nil
}

func (s *splitter) hasDelimiterStatement() bool {
	for _, token := range s.tokens {
		if token.GetChannel() == antlr.TokenDefaultChannel && token.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			return true
		}
	}
	return false
}

// opensBlock tells BEGIN of a compound statement apart from BEGIN [WORK] and XA BEGIN.
func (s *splitter) opensBlock(pos int) bool {
	switch s.neighbour(pos, 1) {
	case parser.MySQLParserWORK_SYMBOL, parser.MySQLParserSEMICOLON_SYMBOL, antlr.TokenEOF:
		return false
	}
	return s.neighbour(pos, -1) != parser.MySQLParserXA_SYMBOL
}

// closesBlock reports whether END closes a BEGIN or CASE rather than IF, LOOP,
// WHILE or REPEAT, which are only legal inside a BEGIN block.
func (s *splitter) closesBlock(pos int) bool {
	if s.neighbour(pos, -1) == parser.MySQLParserXA_SYMBOL {
		return false
	}
	switch s.neighbour(pos, 1) {
	case parser.MySQLParserIF_SYMBOL, parser.MySQLParserLOOP_SYMBOL,
		parser.MySQLParserWHILE_SYMBOL, parser.MySQLParserREPEAT_SYMBOL:
		return false
	}
	return true
}

// neighbour returns the type of the default-channel token offset positions away.
func (s *splitter) neighbour(pos, offset int) int {
	step := 1
	if offset < 0 {
		step, offset = -1, -offset
	}
	for current := pos; offset > 0; {
		current += step
		if current < 0 || current >= len(s.tokens) {
			return antlr.TokenEOF
		}
		if s.tokens[current].GetChannel() == antlr.TokenDefaultChannel {
			offset--
			if offset == 0 {
				return s.tokens[current].GetTokenType()
			}
		}
	}
	return s.tokens[pos].GetTokenType()
}

// restOfLine returns the index after the line holding pos and the line text from pos.
func (s *splitter) restOfLine(pos int) (int, string) {
	for i := pos; i < len(s.tokens); i++ {
		token := s.tokens[i]
		if token.GetTokenType() == antlr.TokenEOF ||
			(token.GetTokenType() == parser.MySQLLexerWHITESPACE && strings.Contains(token.GetText(), "\n")) {
			if i == pos {
				return i + 1, ""
			}
			return i + 1, s.stream.GetTextFromTokens(s.tokens[pos], s.tokens[i-1])
		}
	}
	return len(s.tokens), s.stream.GetTextFromTokens(s.tokens[pos], s.tokens[len(s.tokens)-1])
}

// matchDelimiter reports whether the tokens from pos spell out the delimiter
// and returns the index of the first token after it.
func (s *splitter) matchDelimiter(pos int, delimiter string) (int, bool) {
	matched := 0
	for i := pos; i < len(s.tokens); i++ {
		text := s.tokens[i].GetText()
		if s.tokens[i].GetTokenType() == antlr.TokenEOF || len(text) == 0 {
			return 0, false
		}
		if !strings.HasPrefix(delimiter[matched:], text) {
			return 0, false
		}
		matched += len(text)
		if matched == len(delimiter) {
			return i + 1, true
		}
	}
	return 0, false
}

func (s *splitter) statement(from, to int, suffix string) Statement {
	stmt := Statement{Empty: true}
	if to < from {
		return stmt
	}
	stmt.Text = s.stream.GetTextFromTokens(s.tokens[from], s.tokens[to]) + suffix
	for _, token := range s.tokens[from : to+1] {
		if token.GetChannel() != antlr.TokenDefaultChannel {
			continue
		}
		if stmt.Line == 0 {
			stmt.Line = token.GetLine()
		}
		if token.GetTokenType() != parser.MySQLParserSEMICOLON_SYMBOL && token.GetTokenType() != antlr.TokenEOF {
			stmt.Empty = false
		}
	}
	return stmt
}

// appendTail adds the statement left without a terminator before EOF.
func (s *splitter) appendTail(result []Statement, start int) []Statement {
	eof := len(s.tokens) - 1
	if start < eof {
		result = append(result, s.statement(start, eof-1, ""))
	}
	return result
}
