package domain

import (
	"fmt"
	"strings"
)

// ParseURLList decodes a serialised list of strings as stored in the cases
// CSV and in document metadata.
//
// Accepted forms:
//
//	""                          (empty list)
//	[]                          (empty list)
//	['a', 'b']                  (Python repr, either quote style)
//	["a", "b",]                 (JSON, trailing comma allowed)
//
// Only quoted string literals are accepted inside the brackets. Anything
// else fails with ErrInvalidInput.
func ParseURLList(s string) ([]string, error) {
	items := []string{}
	err := parseList(s, func(p *literalParser) error {
		item, err := p.quoted()
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ParseRecordList decodes a serialised list of flat string-keyed records,
// such as the hearing history cell written by the original scraper:
//
//	[{'Cause List Type': 'Daily', 'Business Date': '01-01-2020'}]
//	[{"cause_list_type": "Daily"}]
//
// Keys and values must be quoted strings; None and null decode as "".
// Key order within a record is not preserved.
func ParseRecordList(s string) ([]map[string]string, error) {
	records := []map[string]string{}
	err := parseList(s, func(p *literalParser) error {
		rec, err := p.record()
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// parseList walks a bracketed, comma-separated list, calling item at the
// start of each element.
func parseList(s string, item func(*literalParser) error) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return fmt.Errorf("%w: list literal must be bracketed: %q", ErrInvalidInput, truncate(s, 40))
	}

	p := &literalParser{src: s[1 : len(s)-1]}
	for {
		p.skipSpace()
		if p.done() {
			return nil
		}
		if err := item(p); err != nil {
			return err
		}

		p.skipSpace()
		if p.done() {
			return nil
		}
		if err := p.expect(','); err != nil {
			return err
		}
	}
}

// FormatURLList serialises urls in the Python repr form used by the
// original dataset, so files round-trip through ParseURLList.
func FormatURLList(urls []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, u := range urls {
		if i > 0 {
			b.WriteString(", ")
		}
		quote := byte('\'')
		if strings.Contains(u, "'") && !strings.Contains(u, `"`) {
			quote = '"'
		}
		b.WriteByte(quote)
		for j := 0; j < len(u); j++ {
			c := u[j]
			switch {
			case c == '\\' || c == quote:
				b.WriteByte('\\')
				b.WriteByte(c)
			case c == '\n':
				b.WriteString(`\n`)
			case c == '\t':
				b.WriteString(`\t`)
			case c == '\r':
				b.WriteString(`\r`)
			default:
				b.WriteByte(c)
			}
		}
		b.WriteByte(quote)
	}
	b.WriteByte(']')
	return b.String()
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *literalParser) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) expect(c byte) error {
	if p.done() || p.src[p.pos] != c {
		return fmt.Errorf("%w: expected '%c' at offset %d", ErrInvalidInput, c, p.pos+1)
	}
	p.pos++
	return nil
}

// record reads one {key: value, ...} literal with string keys and values.
func (p *literalParser) record() (map[string]string, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	rec := map[string]string{}
	for {
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("%w: unterminated record literal", ErrInvalidInput)
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return rec, nil
		}

		key, err := p.quoted()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		rec[key] = value

		p.skipSpace()
		if !p.done() && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.done() || p.src[p.pos] != '}' {
			return nil, fmt.Errorf("%w: expected ',' or '}' at offset %d", ErrInvalidInput, p.pos+1)
		}
	}
}

// value reads a quoted string or a None/null literal.
func (p *literalParser) value() (string, error) {
	for _, null := range []string{"None", "null"} {
		if strings.HasPrefix(p.src[p.pos:], null) {
			p.pos += len(null)
			return "", nil
		}
	}
	return p.quoted()
}

// quoted reads one single- or double-quoted string literal.
func (p *literalParser) quoted() (string, error) {
	if p.done() {
		return "", fmt.Errorf("%w: expected string literal at end of input", ErrInvalidInput)
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("%w: expected string literal at offset %d", ErrInvalidInput, p.pos+1)
	}
	p.pos++

	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case quote:
			return b.String(), nil
		case '\\':
			if p.done() {
				return "", fmt.Errorf("%w: dangling escape", ErrInvalidInput)
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"', '/':
				b.WriteByte(esc)
			default:
				// Unknown escapes are kept verbatim.
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("%w: unterminated string literal", ErrInvalidInput)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
