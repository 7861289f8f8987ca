package util

import (
	"bufio"
	"io"
	"strings"
)

// Event is one discovered translatable occurrence. Both operating modes
// consume the same event stream: the catalog builder folds events into the
// catalog, the substitution engine zips them against table lookups.
type Event struct {
	Text       string
	PluralID   string
	Context    string
	Comment    string
	File       string
	Line       int
	TokenIndex int // index of the text's token in the logical line
	Count      int
	HasCount   bool
}

// Block is one captured subtree serialized as a single multi-line text:
// the matched line plus every deeper line below it, re-quoted and
// tab-indented relative to the matched line, each line "\n"-terminated.
type Block struct {
	Text    string
	Context string
	Comment string
	File    string
	Line    int    // number of the matched line
	Indent  string // leading whitespace of the matched line
}

// Step is the outcome of feeding one physical line to the pipeline. At
// most one of Line and Captured is set; Block is set when the line closed
// an open subtree capture (and may accompany Line, which follows the
// block). All fields nil means the line continues an open quoted span.
type Step struct {
	Line     *Line
	Events   []Event
	Block    *Block
	Captured *Line // logical line absorbed by an open subtree capture
}

// blockCapture accumulates one subtree while it is open.
type blockCapture struct {
	site   Site
	indent int
	prefix string
	number int
	text   strings.Builder
}

// append serializes one logical line into the capture, the way the
// catalog expects it: relative tab indentation, words re-quoted.
func (b *blockCapture) append(line *Line) {
	for i := b.indent; i < line.Indent; i++ {
		b.text.WriteByte('\t')
	}
	for i, tok := range line.Words() {
		if i > 0 {
			b.text.WriteByte(' ')
		}
		if q := chooseQuoteKind(tok.Text).quoteChar(); q != 0 {
			b.text.WriteByte(q)
			b.text.WriteString(tok.Text)
			b.text.WriteByte(q)
		} else {
			b.text.WriteString(tok.Text)
		}
	}
	b.text.WriteByte('\n')
}

// Pipeline runs Tokenizer, NodeBuilder and RuleSet over one input stream.
// It is the single traversal shared by extraction and substitution, so the
// two operations cannot diverge.
type Pipeline struct {
	rules *RuleSet
	tok   *Tokenizer
	nodes *NodeBuilder
	file  string
	block *blockCapture
}

// NewPipeline creates a pipeline for one input stream.
func NewPipeline(rules *RuleSet, file string) *Pipeline {
	return &Pipeline{
		rules: rules,
		tok:   NewTokenizer(file),
		nodes: NewNodeBuilder(file),
		file:  file,
	}
}

// Feed consumes one physical line (newline stripped).
func (p *Pipeline) Feed(number int, text string) (Step, error) {
	line := p.tok.ScanLine(number, text)
	if line == nil {
		return Step{}, nil
	}
	if p.block != nil {
		words := line.Words()
		if len(words) == 0 {
			// Blank and comment-only lines neither extend nor close
			// the capture.
			return Step{Captured: line}, nil
		}
		if line.Indent > p.block.indent {
			p.block.append(line)
			return Step{Captured: line}, nil
		}
		block := p.closeBlock()
		st, err := p.feedLine(line)
		st.Block = block
		return st, err
	}
	return p.feedLine(line)
}

func (p *Pipeline) feedLine(line *Line) (Step, error) {
	node := p.nodes.Build(line)
	if node == nil {
		return Step{Line: line}, nil
	}
	sites, err := p.rules.Match(node)
	if err != nil {
		return Step{Line: line}, err
	}
	var events []Event
	words := line.Words()
	for _, site := range sites {
		if site.Subtree {
			p.block = &blockCapture{
				site:   site,
				indent: line.Indent,
				prefix: line.Delims[0],
				number: line.Number,
			}
			p.block.append(line)
			return Step{Captured: line}, nil
		}
		tokIdx := site.ArgIndex + 1
		if site.ArgIndex < 0 {
			tokIdx = 0
		}
		if tokIdx >= len(words) {
			continue
		}
		comment := site.Comment
		if c := line.Comment(); c != "" {
			if comment != "" {
				comment += "; "
			}
			comment += c
		}
		events = append(events, Event{
			Text:       words[tokIdx].Text + site.Suffix,
			PluralID:   site.PluralID,
			Context:    site.Context,
			Comment:    comment,
			File:       p.file,
			Line:       line.Number,
			TokenIndex: tokIdx,
			Count:      site.Count,
			HasCount:   site.HasCount,
		})
	}
	return Step{Line: line, Events: events}, nil
}

func (p *Pipeline) closeBlock() *Block {
	block := &Block{
		Text:    p.block.text.String(),
		Context: p.block.site.Context,
		Comment: p.block.site.Comment,
		File:    p.file,
		Line:    p.block.number,
		Indent:  p.block.prefix,
	}
	p.block = nil
	return block
}

// Finish must be called at end of stream. It reports an unterminated
// quoted span as MalformedInput and returns a subtree capture still open
// at end of file, if any.
func (p *Pipeline) Finish() (*Block, error) {
	if err := p.tok.Flush(); err != nil {
		return nil, err
	}
	if p.block != nil {
		return p.closeBlock(), nil
	}
	return nil, nil
}

// ExtractReader folds the event stream of one file into the catalog.
// Multiple files are separate streams, each starting with empty carry-over
// state, contributing to one shared catalog.
func ExtractReader(rules *RuleSet, cat *Catalog, file string, r io.Reader) error {
	p := NewPipeline(rules, file)
	record := func(st Step) {
		if st.Block != nil {
			cat.Record(st.Block.Text, st.Block.Context, "",
				st.Block.File, st.Block.Line, st.Block.Comment)
		}
		for _, ev := range st.Events {
			cat.Record(ev.Text, ev.Context, ev.PluralID, ev.File, ev.Line, ev.Comment)
		}
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	number := 0
	for scanner.Scan() {
		number++
		st, err := p.Feed(number, scanner.Text())
		if err != nil {
			return err
		}
		record(st)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	block, err := p.Finish()
	if err != nil {
		return err
	}
	record(Step{Block: block})
	return nil
}
