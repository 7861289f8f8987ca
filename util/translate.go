package util

import (
	"bufio"
	"io"
	"strings"
)

// Translator is the substitution engine: it re-runs the extraction
// pipeline over a corpus and replaces each translatable span with its
// translation, reproducing every byte outside those spans exactly.
type Translator struct {
	Rules *RuleSet
	Table *TranslationTable

	// Hits and Misses count lookup results. Misses are expected in normal
	// operation and never abort a run.
	Hits   int
	Misses int
}

// NewTranslator creates a substitution engine over a compiled table.
func NewTranslator(rules *RuleSet, table *TranslationTable) *Translator {
	return &Translator{Rules: rules, Table: table}
}

// capturedLine is one logical line absorbed by an open subtree capture,
// kept with its exact input bytes so an untranslated subtree can be
// replayed verbatim.
type capturedLine struct {
	line *Line
	raw  string
}

// TranslateReader streams one file through the substitution engine and
// writes the transformed corpus to w. The final line's newline presence is
// preserved.
func (v *Translator) TranslateReader(file string, r io.Reader, w io.Writer) error {
	p := NewPipeline(v.Rules, file)
	br := bufio.NewReader(r)
	var captured []capturedLine
	emit := func(st Step, term string) error {
		if st.Captured != nil {
			captured = append(captured,
				capturedLine{st.Captured, st.Captured.Render() + term})
			return nil
		}
		if st.Block != nil {
			if err := v.emitBlock(w, st.Block, captured); err != nil {
				return err
			}
			captured = captured[:0]
		}
		if st.Line != nil {
			v.apply(st.Line, st.Events)
			if _, err := io.WriteString(w, st.Line.Render()+term); err != nil {
				return err
			}
		}
		return nil
	}
	number := 0
	for {
		raw, rerr := br.ReadString('\n')
		if raw != "" {
			number++
			text := strings.TrimSuffix(raw, "\n")
			term := ""
			if len(text) != len(raw) {
				term = "\n"
			}
			st, err := p.Feed(number, text)
			if err != nil {
				return err
			}
			// While a quoted span is open nothing is emitted; the line
			// break lives inside the accumulated token text.
			if err := emit(st, term); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	block, err := p.Finish()
	if err != nil {
		return err
	}
	if block != nil {
		return v.emitBlock(w, block, captured)
	}
	return nil
}

// emitBlock writes one captured subtree: the translation re-indented to
// the subtree's place in the file when the table resolves it, the original
// input bytes otherwise. Blank and comment lines interleaved with a
// translated subtree are kept, moved below the translation.
func (v *Translator) emitBlock(w io.Writer, blk *Block, captured []capturedLine) error {
	translated, ok := v.Table.Resolve(blk.Context, blk.Text, 0, false)
	if !ok {
		v.Misses++
		for _, c := range captured {
			if _, err := io.WriteString(w, c.raw); err != nil {
				return err
			}
		}
		return nil
	}
	v.Hits++
	for _, line := range strings.Split(strings.TrimSuffix(translated, "\n"), "\n") {
		if _, err := io.WriteString(w, blk.Indent+line+"\n"); err != nil {
			return err
		}
	}
	for _, c := range captured {
		if len(c.line.Words()) != 0 {
			continue
		}
		if _, err := io.WriteString(w, c.raw); err != nil {
			return err
		}
	}
	return nil
}

// apply replaces the text of every event's token that resolves in the
// table. The original quoting style is kept unless the new text cannot be
// written in it.
func (v *Translator) apply(line *Line, events []Event) {
	for _, ev := range events {
		if ev.Text == "" {
			continue
		}
		translated, ok := v.Table.Resolve(ev.Context, ev.Text, ev.Count, ev.HasCount)
		if !ok {
			v.Misses++
			continue
		}
		v.Hits++
		tok := &line.Tokens[ev.TokenIndex]
		tok.Text = translated
		if !canRepresent(tok.Kind, translated) {
			tok.Kind = chooseQuoteKind(translated)
		}
	}
}
