// Package util implements the extraction and substitution core for
// hierarchical, indentation-structured game data files.
package util

import (
	"strings"
)

// TokenKind tells how a token was written in the source line.
type TokenKind int

const (
	// Bareword is an unquoted token terminated by whitespace.
	Bareword TokenKind = iota
	// QuotedString is a double-quoted token, possibly spanning several
	// physical lines.
	QuotedString
	// BacktickString is a backtick-quoted token, used for raw or
	// pre-formatted text, possibly spanning several physical lines.
	BacktickString
	// CommentText is a trailing "#" comment running to end of line.
	CommentText
)

func (k TokenKind) quoteChar() byte {
	switch k {
	case QuotedString:
		return '"'
	case BacktickString:
		return '`'
	}
	return 0
}

// Token is one span of a logical line. Text holds the content with quoting
// resolved; embedded newlines mark a string continued across physical
// lines. A CommentText token keeps the leading '#'.
//
// Start and End are byte offsets: Start in the physical line that opened
// the token, End in the physical line that closed it.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

// Line is one logical line: every token plus the exact delimiter run that
// preceded it, so that Render can reproduce the input bytes.
type Line struct {
	Tokens []Token
	Delims []string // Delims[i] precedes Tokens[i]; one extra trailing run may follow
	Indent int      // number of leading whitespace characters
	Number int      // 1-based number of the first physical line
}

// Words returns the structural tokens of the line, excluding any trailing
// comment.
func (l *Line) Words() []Token {
	if n := len(l.Tokens); n > 0 && l.Tokens[n-1].Kind == CommentText {
		return l.Tokens[:n-1]
	}
	return l.Tokens
}

// Comment returns the trailing comment without the '#' marker, trimmed, or
// "" when the line has none.
func (l *Line) Comment() string {
	if n := len(l.Tokens); n > 0 && l.Tokens[n-1].Kind == CommentText {
		return strings.TrimSpace(strings.TrimPrefix(l.Tokens[n-1].Text, "#"))
	}
	return ""
}

// Render reassembles the line from its delimiters and tokens, applying
// each token's current kind and text. A line whose tokens were not
// modified renders byte-identical to the input.
func (l *Line) Render() string {
	var sb strings.Builder
	for i, tok := range l.Tokens {
		sb.WriteString(l.Delims[i])
		if q := tok.Kind.quoteChar(); q != 0 {
			sb.WriteByte(q)
			sb.WriteString(tok.Text)
			sb.WriteByte(q)
		} else {
			sb.WriteString(tok.Text)
		}
	}
	if len(l.Delims) > len(l.Tokens) {
		sb.WriteString(l.Delims[len(l.Delims)-1])
	}
	return sb.String()
}

// Tokenizer turns physical lines into logical lines, carrying the state of
// an open quoted span between calls. Use one Tokenizer per input stream.
type Tokenizer struct {
	file    string
	pending *Line // logical line whose last token is an open quote
}

// NewTokenizer creates a tokenizer for one input stream.
func NewTokenizer(file string) *Tokenizer {
	return &Tokenizer{file: file}
}

// Open reports whether a quoted span is still open.
func (t *Tokenizer) Open() bool {
	return t.pending != nil
}

// ScanLine tokenizes one physical line (newline stripped). It returns the
// completed logical line, or nil when the line ends inside an open quoted
// span that continues on the next line.
func (t *Tokenizer) ScanLine(number int, text string) *Line {
	if t.pending != nil {
		line := t.pending
		tok := &line.Tokens[len(line.Tokens)-1]
		idx := strings.IndexByte(text, tok.Kind.quoteChar())
		if idx < 0 {
			tok.Text += "\n" + text
			return nil
		}
		tok.Text += "\n" + text[:idx]
		tok.End = idx + 1
		t.pending = nil
		t.scan(line, text, idx+1)
		if t.pending != nil {
			return nil
		}
		return line
	}
	line := &Line{Number: number}
	t.scan(line, text, 0)
	if t.pending != nil {
		return nil
	}
	return line
}

// Flush reports an error when end of stream is reached inside a quoted span.
func (t *Tokenizer) Flush() error {
	if t.pending == nil {
		return nil
	}
	line := t.pending
	t.pending = nil
	return &MalformedInputError{
		File: t.file,
		Line: line.Number,
		Msg:  "unterminated quoted string",
	}
}

func (t *Tokenizer) scan(line *Line, text string, from int) {
	var delim strings.Builder
	inIndent := from == 0
	i := from
	for i < len(text) {
		c := text[i]
		if inIndent {
			if c <= ' ' {
				delim.WriteByte(c)
				line.Indent++
				i++
				continue
			}
			inIndent = false
		}
		if c <= ' ' {
			delim.WriteByte(c)
			i++
			continue
		}
		if c == '#' {
			// A '#' is a comment only at token-start position.
			line.Delims = append(line.Delims, delim.String())
			line.Tokens = append(line.Tokens, Token{
				Kind:  CommentText,
				Text:  text[i:],
				Start: i,
				End:   len(text),
			})
			return
		}
		line.Delims = append(line.Delims, delim.String())
		delim.Reset()
		start := i
		if c == '"' || c == '`' {
			kind := QuotedString
			if c == '`' {
				kind = BacktickString
			}
			end := strings.IndexByte(text[i+1:], c)
			if end < 0 {
				// Quote left open at end of line, continue on the next one.
				line.Tokens = append(line.Tokens, Token{
					Kind:  kind,
					Text:  text[i+1:],
					Start: start,
					End:   len(text),
				})
				t.pending = line
				return
			}
			end += i + 1
			line.Tokens = append(line.Tokens, Token{
				Kind:  kind,
				Text:  text[i+1 : end],
				Start: start,
				End:   end + 1,
			})
			i = end + 1
			continue
		}
		j := i + 1
		for j < len(text) && text[j] > ' ' {
			j++
		}
		line.Tokens = append(line.Tokens, Token{
			Kind:  Bareword,
			Text:  text[i:j],
			Start: start,
			End:   j,
		})
		i = j
	}
	if delim.Len() > 0 {
		line.Delims = append(line.Delims, delim.String())
	}
}

// chooseQuoteKind picks a quoting style for rewritten text, matching the
// quoting choice of the game's own data writer: backtick when the text
// contains a double quote, double quotes when it contains whitespace or is
// empty, bareword otherwise.
func chooseQuoteKind(s string) TokenKind {
	hasSpace := len(s) == 0
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			return BacktickString
		}
		if s[i] <= ' ' {
			hasSpace = true
		}
	}
	if hasSpace {
		return QuotedString
	}
	return Bareword
}

// canRepresent reports whether text can be written using the given quoting
// style without changing its meaning.
func canRepresent(kind TokenKind, s string) bool {
	switch kind {
	case Bareword:
		if len(s) == 0 || s[0] == '#' {
			return false
		}
		for i := 0; i < len(s); i++ {
			if s[i] <= ' ' || s[i] == '"' || s[i] == '`' {
				return false
			}
		}
		return true
	case QuotedString:
		return !strings.Contains(s, `"`)
	case BacktickString:
		return !strings.Contains(s, "`")
	}
	return false
}
