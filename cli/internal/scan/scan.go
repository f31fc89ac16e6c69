// Package scan turns a CLI text stream into a sequence of directives.
//
// The scanner consumes input line by line, strips comment regions (a "//"
// marker toggles comment mode, which carries across physical lines), and
// recognizes "$$NAME" directive markers anywhere in the visible text. A
// directive's parameters are the separator-delimited values following its
// name, up to the next "$$" marker; separators are '/', ',' and a lone
// '$'. A line break also terminates the current value, so long parameter
// lists may continue across physical lines.
package scan

import (
	"bufio"
	"io"
	"strings"
)

// Directive is one $$NAME token with its parameter values. Line is the
// 1-based physical line its marker appeared on. Raw is the verbatim
// parameter text (comment-stripped, line breaks preserved), for
// directives whose payload is free text rather than a value list.
type Directive struct {
	Name   string
	Params []string
	Raw    string
	Line   int
}

// Scanner reads directives from a CLI text stream. All state, including
// the cross-line comment mode, is confined to the scanner instance.
type Scanner struct {
	r       *bufio.Reader
	onLine  func(bytesRead int64)
	pending []Directive
	open    *Directive
	line    int
	bytes   int64
	comment bool
	eof     bool
}

// NewScanner creates a scanner over r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// OnLine registers a hook invoked once per consumed physical line with the
// total bytes read so far. Used for progress estimation.
func (s *Scanner) OnLine(fn func(bytesRead int64)) {
	s.onLine = fn
}

// Line returns the number of physical lines consumed so far.
func (s *Scanner) Line() int {
	return s.line
}

// BytesRead returns the total input bytes consumed so far.
func (s *Scanner) BytesRead() int64 {
	return s.bytes
}

// Next returns the next complete directive. It returns io.EOF when the
// input is exhausted.
func (s *Scanner) Next() (Directive, error) {
	for len(s.pending) == 0 && !s.eof {
		if err := s.readLine(); err != nil {
			if err == io.EOF {
				s.eof = true
				if s.open != nil {
					s.pending = append(s.pending, *s.open)
					s.open = nil
				}
				break
			}
			return Directive{}, err
		}
	}
	if len(s.pending) == 0 {
		return Directive{}, io.EOF
	}
	d := s.pending[0]
	s.pending = s.pending[1:]
	return d, nil
}

func (s *Scanner) readLine() error {
	text, err := s.r.ReadString('\n')
	if len(text) > 0 {
		s.line++
		s.bytes += int64(len(text))
		s.process(s.stripComments(strings.TrimRight(text, "\r\n")))
		if s.onLine != nil {
			s.onLine(s.bytes)
		}
		if err == io.EOF {
			// Unterminated last line was still consumed; report EOF on
			// the next read.
			return nil
		}
	}
	return err
}

// stripComments removes comment regions from one line. Each "//" marker
// toggles comment mode; the legacy grammar leaves multi-line comments
// ambiguous, so everything between markers is treated as comment even
// across line breaks.
func (s *Scanner) stripComments(text string) string {
	var b strings.Builder
	for {
		i := strings.Index(text, "//")
		if i < 0 {
			if !s.comment {
				b.WriteString(text)
			}
			return b.String()
		}
		if !s.comment {
			b.WriteString(text[:i])
		}
		s.comment = !s.comment
		text = text[i+2:]
	}
}

func (s *Scanner) process(text string) {
	for {
		i := strings.Index(text, "$$")
		if i < 0 {
			s.appendParams(text)
			return
		}
		s.appendParams(text[:i])
		if s.open != nil {
			s.pending = append(s.pending, *s.open)
		}
		rest := text[i+2:]
		j := 0
		for j < len(rest) && rest[j] >= 'A' && rest[j] <= 'Z' {
			j++
		}
		s.open = &Directive{Name: rest[:j], Line: s.line}
		text = rest[j:]
	}
}

// appendParams splits parameter text on the '/', ',' and lone-'$' value
// terminators and attaches the values to the open directive. The raw text
// is kept alongside for free-text payloads. Text outside any directive
// (before the first marker) is discarded.
func (s *Scanner) appendParams(text string) {
	if s.open == nil {
		return
	}
	if text != "" {
		if s.open.Raw != "" {
			s.open.Raw += "\n"
		}
		s.open.Raw += text
	}
	for _, f := range strings.FieldsFunc(text, isSeparator) {
		f = strings.TrimSpace(f)
		if f != "" {
			s.open.Params = append(s.open.Params, f)
		}
	}
}

func isSeparator(r rune) bool {
	return r == '/' || r == ',' || r == '$'
}
