package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/markupkit/markup/css/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Scanner turns a stream of stylesheet text into CSS tokens.
//
// This implementation only allows UTF-8 encoding. The scanner never
// fails: unterminated constructs consume to end of input and unparseable
// numeric text yields zero, each recorded on Errors.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	rd *bufio.Reader

	buf    [4]rune      // circular buffer for runes
	bufpos [4]token.Pos // circular buffer for position
	bufi   int          // circular buffer index
	bufn   int          // number of buffered characters
}

// New returns a new instance of Scanner.
func New(r io.Reader) *Scanner {
	return &Scanner{
		rd: bufio.NewReader(r),
	}
}

// Scan returns the next token. The stream ends with an EOF token.
func (s *Scanner) Scan() token.Token {
	pos := s.Pos()
	ch := s.read()

	if ch == eof {
		return &token.EOF{}
	} else if isWhitespace(ch) {
		return s.scanWhitespace(pos)
	} else if ch == '/' {
		if next := s.read(); next == '*' {
			return s.scanComment(pos)
		}
		s.unread(1)
		return &token.Delim{Value: '/', Pos: pos}
	} else if ch == '"' || ch == '\'' {
		return s.scanString(pos, ch)
	} else if ch == '#' {
		return &token.Hash{Value: s.scanName(), Pos: pos}
	} else if ch == '@' {
		return &token.AtKeyword{Value: s.scanName(), Pos: pos}
	} else if ch == '(' {
		return &token.LParen{Pos: pos}
	} else if ch == ')' {
		return &token.RParen{Pos: pos}
	} else if ch == '{' {
		return &token.LBrace{Pos: pos}
	} else if ch == '}' {
		return &token.RBrace{Pos: pos}
	} else if ch == '[' {
		return &token.LBrack{Pos: pos}
	} else if ch == ']' {
		return &token.RBrack{Pos: pos}
	} else if ch == ',' {
		return &token.Comma{Pos: pos}
	} else if ch == ':' {
		return &token.Colon{Pos: pos}
	} else if ch == ';' {
		return &token.Semicolon{Pos: pos}
	} else if isDigit(ch) {
		s.unread(1)
		return s.scanNumeric(pos)
	} else if isNameStart(ch) {
		s.unread(1)
		return &token.Ident{Value: s.scanName(), Pos: pos}
	}
	return &token.Delim{Value: ch, Pos: pos}
}

// scanWhitespace consumes the current code point and all subsequent
// whitespace. The content is discarded.
func (s *Scanner) scanWhitespace(pos token.Pos) token.Token {
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if !isWhitespace(ch) {
			s.unread(1)
			break
		}
	}
	return &token.Whitespace{Pos: pos}
}

// scanString consumes a quoted string. A backslash marks the following
// character as literal; there is no deeper escape-sequence decoding. An
// EOF closes out the string.
func (s *Scanner) scanString(pos token.Pos, ending rune) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == ending {
			break
		} else if ch == eof {
			s.Errors = append(s.Errors, &Error{Message: "unterminated string", Pos: pos})
			break
		} else if ch == '\\' {
			if next := s.read(); next != eof {
				_, _ = buf.WriteRune(next)
			}
		} else {
			_, _ = buf.WriteRune(ch)
		}
	}
	return &token.String{Value: buf.String(), Pos: pos}
}

// scanComment consumes all characters up to "*/", or end of input.
// This function assumes that the initial "/*" have just been consumed.
func (s *Scanner) scanComment(pos token.Pos) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			s.Errors = append(s.Errors, &Error{Message: "unterminated comment", Pos: pos})
			break
		}
		if ch == '*' {
			if next := s.read(); next == '/' {
				break
			}
			s.unread(1)
		}
		_, _ = buf.WriteRune(ch)
	}
	return &token.Comment{Value: buf.String(), Pos: pos}
}

// scanNumeric consumes a numeric token: a run of digits and full stops,
// optionally followed by "%" for a percentage or an identifier run for a
// dimension unit. Text that does not parse as a number yields zero.
func (s *Scanner) scanNumeric(pos token.Pos) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if !isDigit(ch) && ch != '.' {
			s.unread(1)
			break
		}
		_, _ = buf.WriteRune(ch)
	}

	num, err := strconv.ParseFloat(buf.String(), 64)
	if err != nil {
		num = 0
		s.Errors = append(s.Errors, &Error{Message: fmt.Sprintf("malformed number %q", buf.String()), Pos: pos})
	}

	if ch := s.read(); ch == '%' {
		return &token.Percentage{Value: num, Pos: pos}
	} else if unicode.IsLetter(ch) {
		s.unread(1)
		return &token.Dimension{Value: num, Unit: s.scanName(), Pos: pos}
	}
	s.unread(1)
	return &token.Number{Value: num, Pos: pos}
}

// scanName consumes an identifier run, which may be empty.
func (s *Scanner) scanName() string {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if !isName(ch) {
			s.unread(1)
			return buf.String()
		}
		_, _ = buf.WriteRune(ch)
	}
}

// read reads the next rune from the reader.
// This function will initially check for any characters that have been pushed
// back onto the lookahead buffer and return those. Otherwise it will read from
// the reader and do preprocessing to convert newline characters and NULL.
func (s *Scanner) read() rune {
	// If we have runes on our internal lookahead buffer then return those.
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	// Otherwise read from the reader.
	ch, _, err := s.rd.ReadRune()
	pos := s.Pos()
	if err != nil {
		ch = eof
	} else {
		// Preprocess the input stream by replacing FF with LF. (§3.3)
		if ch == '\f' {
			ch = '\n'
		}

		// Preprocess the input stream by replacing CR and CRLF with LF. (§3.3)
		// The lookahead stays on the reader so a non-LF follower is
		// re-read and normalized itself.
		if ch == '\r' {
			if next, _, err := s.rd.ReadRune(); err != nil {
				// nop
			} else if next != '\n' {
				_ = s.rd.UnreadRune()
			}
			ch = '\n'
		}

		// Replace NULL with Unicode replacement character. (§3.3)
		if ch == '\000' {
			ch = '�'
		}

		// Track scanner position.
		if ch == '\n' {
			pos.Line++
			pos.Char = 0
		} else {
			pos.Char++
		}
	}

	// Add to circular buffer.
	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread adds the previous n code points back onto the buffer.
func (s *Scanner) unread(n int) {
	for i := 0; i < n; i++ {
		s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
		s.bufn++
	}
}

// Pos reads the position of the next code point to be scanned.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

// isDigit returns true if the rune is an ASCII digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isNameStart returns true if the rune can start an identifier run.
func isNameStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '-' || ch == '_'
}

// isName returns true if the rune is an identifier code point.
func isName(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_'
}

// Error represents a scan error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}
