package util

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// POTOptions control catalog template serialization.
type POTOptions struct {
	// NoLocation omits "#: file:line" reference lines, for
	// privacy-preserving templates.
	NoLocation bool
	// PackageName is written into the Project-Id-Version placeholder.
	PackageName string
	// CreationDate stamps POT-Creation-Date; the zero value means now.
	CreationDate time.Time
}

// WritePOT renders the catalog in the gettext POT interchange format:
// a placeholder header block, then one msgid block per entry with "#."
// translator comments, "#:" location references and empty msgstr
// placeholders (indexed when the entry has a plural form).
func WritePOT(w io.Writer, cat *Catalog, opts POTOptions) error {
	pkg := opts.PackageName
	if pkg == "" {
		pkg = "PACKAGE VERSION"
	}
	created := opts.CreationDate
	if created.IsZero() {
		created = time.Now()
	}

	ew := &errWriter{w: w}
	ew.printf("# SOME DESCRIPTIVE TITLE.\n")
	ew.printf("# This file is distributed under the same license as the %s package.\n", pkg)
	ew.printf("# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.\n")
	ew.printf("#\n")
	ew.printf("#, fuzzy\n")
	ew.printf("msgid \"\"\n")
	ew.printf("msgstr \"\"\n")
	ew.printf("\"Project-Id-Version: %s\\n\"\n", pkg)
	ew.printf("\"Report-Msgid-Bugs-To: \\n\"\n")
	ew.printf("\"POT-Creation-Date: %s\\n\"\n", created.Format("2006-01-02 15:04-0700"))
	ew.printf("\"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\\n\"\n")
	ew.printf("\"Last-Translator: FULL NAME <EMAIL@ADDRESS>\\n\"\n")
	ew.printf("\"Language-Team: LANGUAGE <LL@li.org>\\n\"\n")
	ew.printf("\"Language: \\n\"\n")
	ew.printf("\"MIME-Version: 1.0\\n\"\n")
	ew.printf("\"Content-Type: text/plain; charset=UTF-8\\n\"\n")
	ew.printf("\"Content-Transfer-Encoding: 8bit\\n\"\n")
	ew.printf("\"Plural-Forms: nplurals=INTEGER; plural=EXPRESSION;\\n\"\n")

	for _, entry := range cat.Entries() {
		ew.printf("\n")
		for _, comment := range entry.Comments {
			ew.printf("#. %s\n", comment)
		}
		if !opts.NoLocation {
			for _, loc := range entry.Locations {
				ew.printf("#: %s:%d\n", loc.File, loc.Line)
			}
		}
		if entry.Context != "" {
			ew.printf("msgctxt \"%s\"\n", escapePo(entry.Context))
		}
		ew.printf("msgid \"%s\"\n", escapePo(entry.ID))
		if entry.PluralID != "" {
			ew.printf("msgid_plural \"%s\"\n", escapePo(entry.PluralID))
			ew.printf("msgstr[0] \"\"\n")
			ew.printf("msgstr[1] \"\"\n")
		} else {
			ew.printf("msgstr \"\"\n")
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

// escapePo escapes text for a quoted PO field. Embedded newlines become
// "\n" escapes followed by a quoted-line continuation, reproducing the
// multi-line style of gettext tools; other control characters use
// backslash or \xNN escapes.
func escapePo(s string) string {
	var out strings.Builder
	foundNL := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\a':
			out.WriteString(`\a`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		case '\n':
			out.WriteString("\\n\"\n\"")
			foundNL = true
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		case '\v':
			out.WriteString(`\v`)
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		default:
			if c < ' ' {
				fmt.Fprintf(&out, `\x%02X`, c)
			} else {
				out.WriteByte(c)
			}
		}
	}
	res := out.String()
	if strings.HasSuffix(s, "\n") {
		// Drop the continuation opened after the final newline.
		res = res[:len(res)-3]
	}
	if foundNL {
		res = "\"\n\"" + res
	}
	return res
}
