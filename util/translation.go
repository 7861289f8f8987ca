package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/qiniu/iconv"
	log "github.com/sirupsen/logrus"
	"github.com/snapcore/go-gettext/pluralforms"
)

// PoEntry is a single message block of a PO or POT file.
type PoEntry struct {
	Comments     []string
	MsgCtxt      string
	MsgID        string
	MsgIDPlural  string
	MsgStr       string
	MsgStrPlural []string
}

// ParsePoEntries parses PO file entries. The header entry (the one with an
// empty msgid) is returned separately and not included in entries.
func ParsePoEntries(data []byte) (entries []*PoEntry, header *PoEntry, err error) {
	var (
		cur  *PoEntry
		last *string
	)
	flush := func() {
		if cur == nil {
			return
		}
		if cur.MsgID == "" && cur.MsgIDPlural == "" && header == nil {
			header = cur
		} else {
			entries = append(entries, cur)
		}
		cur = nil
		last = nil
	}
	ensure := func() *PoEntry {
		if cur == nil {
			cur = &PoEntry{}
		}
		return cur
	}

	lines := strings.Split(string(data), "\n")
	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			ensure().Comments = append(ensure().Comments, line)
		case strings.HasPrefix(line, "msgctxt "):
			// A msgctxt not separated from the previous entry by a blank
			// line also starts a new entry.
			if cur != nil && (cur.MsgID != "" || cur.MsgStr != "" || len(cur.MsgStrPlural) > 0) {
				flush()
			}
			value, verr := unquotePo(line[len("msgctxt "):])
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			e := ensure()
			e.MsgCtxt = value
			last = &e.MsgCtxt
		case strings.HasPrefix(line, "msgid_plural "):
			value, verr := unquotePo(line[len("msgid_plural "):])
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			e := ensure()
			e.MsgIDPlural = value
			last = &e.MsgIDPlural
		case strings.HasPrefix(line, "msgid "):
			// A msgid not separated from the previous entry by a blank
			// line still starts a new entry.
			if cur != nil && last != nil && last != &cur.MsgCtxt && cur.MsgID != "" {
				flush()
			}
			value, verr := unquotePo(line[len("msgid "):])
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			e := ensure()
			e.MsgID = value
			last = &e.MsgID
		case strings.HasPrefix(line, "msgstr["):
			end := strings.IndexByte(line, ']')
			if end < 0 {
				return nil, nil, fmt.Errorf("po parse error at line %d: %q", n+1, line)
			}
			idx, verr := strconv.Atoi(line[len("msgstr["):end])
			if verr != nil || idx < 0 || end+1 >= len(line) {
				return nil, nil, fmt.Errorf("po parse error at line %d: %q", n+1, line)
			}
			value, verr := unquotePo(strings.TrimSpace(line[end+1:]))
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			e := ensure()
			for len(e.MsgStrPlural) <= idx {
				e.MsgStrPlural = append(e.MsgStrPlural, "")
			}
			e.MsgStrPlural[idx] = value
			last = &e.MsgStrPlural[idx]
		case strings.HasPrefix(line, "msgstr "):
			value, verr := unquotePo(line[len("msgstr "):])
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			e := ensure()
			e.MsgStr = value
			last = &e.MsgStr
		case strings.HasPrefix(line, `"`):
			if last == nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: continuation without field", n+1)
			}
			value, verr := unquotePo(line)
			if verr != nil {
				return nil, nil, fmt.Errorf("po parse error at line %d: %v", n+1, verr)
			}
			*last += value
		default:
			return nil, nil, fmt.Errorf("po parse error at line %d: %q", n+1, line)
		}
	}
	flush()
	return entries, header, nil
}

// unquotePo strips the surrounding quotes of a PO field and resolves
// gettext backslash escapes.
func unquotePo(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("not a quoted string: %q", s)
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash in %q", s)
		}
		switch s[i] {
		case 'a':
			out.WriteByte('\a')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'v':
			out.WriteByte('\v')
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case 'x':
			if i+2 >= len(s) {
				return "", fmt.Errorf("bad \\x escape in %q", s)
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in %q", s)
			}
			out.WriteByte(byte(n))
			i += 2
		default:
			return "", fmt.Errorf("unknown escape \\%c in %q", s[i], s)
		}
	}
	return out.String(), nil
}

// PoHeader returns header fields of the PO header entry, keyed by name.
func (e *PoEntry) PoHeader() map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(e.MsgStr, "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			fields[strings.TrimSpace(line[:idx])] = strings.TrimSpace(line[idx+1:])
		}
	}
	return fields
}

var (
	charsetRegex  = regexp.MustCompile(`charset=([A-Za-z0-9_.\-]+)`)
	npluralsRegex = regexp.MustCompile(`nplurals\s*=\s*([0-9]+)`)
	pluralRegex   = regexp.MustCompile(`plural\s*=\s*([^;]+)`)
)

// TranslationTable is the compiled, immutable form of a translated
// catalog, queryable by (context, text, count). Built once per run.
type TranslationTable struct {
	singular map[string]string
	plural   map[string][]string
	expr     pluralforms.Expression
	nplurals int
}

// CompileTranslationTable builds a translation table from PO file bytes.
// A header declaring a charset other than UTF-8 has its translations
// converted with iconv. The Plural-Forms header, when present, supplies
// the plural-selection function.
func CompileTranslationTable(data []byte) (*TranslationTable, error) {
	entries, header, err := ParsePoEntries(data)
	if err != nil {
		return nil, err
	}

	table := &TranslationTable{
		singular: make(map[string]string),
		plural:   make(map[string][]string),
	}

	var cd iconv.Iconv
	useIconv := false
	if header != nil {
		fields := header.PoHeader()
		if m := charsetRegex.FindStringSubmatch(fields["Content-Type"]); m != nil {
			if !sameEncoding(m[1], "UTF-8") {
				cd, err = iconv.Open("UTF-8", m[1])
				if err != nil {
					return nil, fmt.Errorf("unsupported charset %q: %v", m[1], err)
				}
				defer cd.Close()
				useIconv = true
			}
		}
		if forms := fields["Plural-Forms"]; forms != "" {
			if m := npluralsRegex.FindStringSubmatch(forms); m != nil {
				table.nplurals, _ = strconv.Atoi(m[1])
			}
			if m := pluralRegex.FindStringSubmatch(forms); m != nil {
				expr, cerr := pluralforms.Compile(strings.TrimSpace(m[1]))
				if cerr != nil {
					log.Warnf("cannot compile Plural-Forms %q: %s", forms, cerr)
				} else {
					table.expr = expr
				}
			}
		}
	}

	recode := func(s string) string {
		if !useIconv || s == "" {
			return s
		}
		return cd.ConvString(s)
	}

	for _, entry := range entries {
		if entry.MsgID == "" {
			continue
		}
		key := msgKey(entry.MsgCtxt, entry.MsgID)
		if len(entry.MsgStrPlural) > 0 {
			forms := make([]string, len(entry.MsgStrPlural))
			for i, form := range entry.MsgStrPlural {
				forms[i] = recode(form)
				if !utf8.ValidString(forms[i]) {
					log.Warnf("translation of %q is not valid UTF-8", entry.MsgID)
				}
			}
			table.plural[key] = forms
			continue
		}
		if entry.MsgStr == "" {
			continue
		}
		str := recode(entry.MsgStr)
		if !utf8.ValidString(str) {
			log.Warnf("translation of %q is not valid UTF-8", entry.MsgID)
		}
		table.singular[key] = str
	}
	return table, nil
}

func sameEncoding(a, b string) bool {
	normalize := func(s string) string {
		s = strings.ToLower(s)
		return strings.ReplaceAll(strings.ReplaceAll(s, "-", ""), "_", "")
	}
	return normalize(a) == normalize(b)
}

// Lookup returns the translation for an exact (context, text) pair.
func (t *TranslationTable) Lookup(context, text string) (string, bool) {
	s, ok := t.singular[msgKey(context, text)]
	return s, ok && s != ""
}

// LookupPlural returns the plural form selected for count n, using the
// compiled Plural-Forms expression or the Germanic rule when the catalog
// declares none.
func (t *TranslationTable) LookupPlural(context, text string, n int) (string, bool) {
	forms, ok := t.plural[msgKey(context, text)]
	if !ok {
		return "", false
	}
	idx := 0
	if t.expr != nil {
		idx = t.expr.Eval(uint32(n))
	} else if n != 1 {
		idx = 1
	}
	if idx < 0 || idx >= len(forms) || forms[idx] == "" {
		return "", false
	}
	return forms[idx], true
}

// Resolve implements the substitution lookup order: exact (context, text)
// first, then plural selection, then the same two steps context-free.
// Without a known count a plural entry resolves to its first form.
func (t *TranslationTable) Resolve(context, text string, count int, hasCount bool) (string, bool) {
	if s, ok := t.resolveIn(context, text, count, hasCount); ok {
		return s, true
	}
	if context != "" {
		return t.resolveIn("", text, count, hasCount)
	}
	return "", false
}

func (t *TranslationTable) resolveIn(context, text string, count int, hasCount bool) (string, bool) {
	if s, ok := t.Lookup(context, text); ok {
		return s, true
	}
	if hasCount {
		return t.LookupPlural(context, text, count)
	}
	if forms, ok := t.plural[msgKey(context, text)]; ok && forms[0] != "" {
		return forms[0], true
	}
	return "", false
}
