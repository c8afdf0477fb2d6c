package scanner

import (
	"bufio"
	"bytes"
	"io"
	"unicode"

	"github.com/markupkit/markup/html/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Scanner turns a stream of markup text into HTML tokens.
//
// This implementation only allows UTF-8 encoding. The scanner never fails:
// malformed input degrades to a best-effort token truncated at end of
// input, and each such degradation is recorded on Errors.
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

// Scan returns the next token. Whitespace between tokens is consumed
// silently; whitespace inside character data is preserved in the Text
// token. The stream ends with an EOF token.
func (s *Scanner) Scan() token.Token {
	for {
		pos := s.Pos()
		ch := s.read()

		if ch == eof {
			return &token.EOF{}
		} else if isWhitespace(ch) {
			continue
		} else if ch == '<' {
			return s.scanMarkup(pos)
		}
		s.unread(1)
		return s.scanText(pos)
	}
}

// scanMarkup consumes a comment, doctype, end tag, or start tag.
// This assumes the "<" has just been consumed.
func (s *Scanner) scanMarkup(pos token.Pos) token.Token {
	switch ch := s.read(); ch {
	case '!':
		if ch1 := s.read(); ch1 == '-' {
			if ch2 := s.read(); ch2 == '-' {
				return s.scanComment(pos)
			}
			s.unread(1)
		}
		s.unread(1)
		return s.scanDoctype(pos)
	case '/':
		return s.scanEndTag(pos)
	default:
		s.unread(1)
		return s.scanStartTag(pos)
	}
}

// scanText consumes character data up to the next "<" or end of input.
// The caller guarantees at least one non-whitespace code point.
func (s *Scanner) scanText(pos token.Pos) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			break
		} else if ch == '<' {
			s.unread(1)
			break
		}
		_, _ = buf.WriteRune(ch)
	}
	return &token.Text{Value: buf.String(), Pos: pos}
}

// scanComment consumes all characters up to "-->".
// This assumes the opening "<!--" has just been consumed. A comment that
// never terminates yields its accumulated content at end of input.
func (s *Scanner) scanComment(pos token.Pos) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			s.Errors = append(s.Errors, &Error{Message: "unterminated comment", Pos: pos})
			break
		}
		if ch == '-' {
			if ch1 := s.read(); ch1 == '-' {
				if ch2 := s.read(); ch2 == '>' {
					break
				}
				s.unread(1)
				_, _ = buf.WriteString("--")
				continue
			}
			s.unread(1)
		}
		_, _ = buf.WriteRune(ch)
	}
	return &token.Comment{Value: buf.String(), Pos: pos}
}

// scanDoctype consumes the raw declaration content up to ">".
// This assumes the opening "<!" has just been consumed.
func (s *Scanner) scanDoctype(pos token.Pos) token.Token {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof {
			s.Errors = append(s.Errors, &Error{Message: "unterminated doctype", Pos: pos})
			break
		}
		if ch == '>' {
			break
		}
		_, _ = buf.WriteRune(ch)
	}
	return &token.Doctype{Value: buf.String(), Pos: pos}
}

// scanEndTag consumes a closing tag name and its ">".
// This assumes the opening "</" has just been consumed.
func (s *Scanner) scanEndTag(pos token.Pos) token.Token {
	name := s.scanName()
	s.skipWhitespace()
	if ch := s.read(); ch != '>' {
		s.unread(1)
		s.Errors = append(s.Errors, &Error{Message: "end tag not closed", Pos: pos})
	}
	return &token.EndTag{Name: name, Pos: pos}
}

// scanStartTag consumes a tag name, attribute list, optional trailing "/"
// and the closing ">". This assumes the opening "<" has just been consumed.
func (s *Scanner) scanStartTag(pos token.Pos) token.Token {
	tag := &token.StartTag{Pos: pos}
	tag.Name = s.scanName()
	tag.Attributes = s.scanAttributes()

	if ch := s.read(); ch == '/' {
		tag.SelfClosing = true
	} else {
		s.unread(1)
	}
	if ch := s.read(); ch != '>' {
		s.unread(1)
		s.Errors = append(s.Errors, &Error{Message: "start tag not closed", Pos: pos})
	}
	return tag
}

// scanAttributes consumes the attribute list of a start tag. Source order
// is preserved and duplicate names are kept.
func (s *Scanner) scanAttributes() []token.Attribute {
	var attrs []token.Attribute
	for {
		s.skipWhitespace()
		ch := s.read()
		if ch == eof || ch == '>' || ch == '/' {
			s.unread(1)
			break
		}
		s.unread(1)

		name := s.scanAttributeName()
		if name == "" {
			break
		}
		s.skipWhitespace()

		// A missing "=" is the boolean-attribute form: empty value.
		var value string
		if ch := s.read(); ch == '=' {
			value = s.scanAttributeValue()
		} else {
			s.unread(1)
		}
		attrs = append(attrs, token.Attribute{Name: name, Value: value})
	}
	return attrs
}

// scanAttributeValue consumes a quoted or unquoted attribute value.
// Quoted contents are taken verbatim, without escape processing; an
// unterminated quote consumes to end of input.
func (s *Scanner) scanAttributeValue() string {
	s.skipWhitespace()

	if ch := s.read(); ch == '"' || ch == '\'' {
		pos, ending := s.Pos(), ch
		var buf bytes.Buffer
		for {
			ch := s.read()
			if ch == ending {
				return buf.String()
			} else if ch == eof {
				s.Errors = append(s.Errors, &Error{Message: "unterminated attribute value", Pos: pos})
				return buf.String()
			}
			_, _ = buf.WriteRune(ch)
		}
	}
	s.unread(1)

	var buf bytes.Buffer
	for {
		ch := s.read()
		if ch == eof || isWhitespace(ch) || ch == '>' || ch == '/' {
			s.unread(1)
			return buf.String()
		}
		_, _ = buf.WriteRune(ch)
	}
}

// scanName consumes a tag name.
func (s *Scanner) scanName() string {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if !isAlphanumeric(ch) && ch != '-' && ch != '_' {
			s.unread(1)
			return buf.String()
		}
		_, _ = buf.WriteRune(ch)
	}
}

// scanAttributeName consumes an attribute name, which additionally allows
// a colon for namespaced attributes.
func (s *Scanner) scanAttributeName() string {
	var buf bytes.Buffer
	for {
		ch := s.read()
		if !isAlphanumeric(ch) && ch != '-' && ch != '_' && ch != ':' {
			s.unread(1)
			return buf.String()
		}
		_, _ = buf.WriteRune(ch)
	}
}

// skipWhitespace consumes contiguous whitespace.
func (s *Scanner) skipWhitespace() {
	for {
		if ch := s.read(); !isWhitespace(ch) {
			s.unread(1)
			return
		}
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
		// Replace FF with LF.
		if ch == '\f' {
			ch = '\n'
		}

		// Replace CR and CRLF with LF. The lookahead stays on the
		// reader so a non-LF follower is re-read and normalized itself.
		if ch == '\r' {
			if next, _, err := s.rd.ReadRune(); err != nil {
				// nop
			} else if next != '\n' {
				_ = s.rd.UnreadRune()
			}
			ch = '\n'
		}

		// Replace NULL with Unicode replacement character.
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

// isWhitespace returns true if the rune has the Unicode White_Space
// property, which covers NBSP and vertical tab in addition to the ASCII
// set. Form feeds and carriage returns have been normalized to newlines
// by the time classification happens.
func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

// isAlphanumeric returns true if the rune is a letter or digit.
func isAlphanumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
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
