package util

import (
	"regexp"
	"strconv"
)

// Rule maps a node-path shape to the argument positions that carry
// translatable text. Patterns are keyword sequences matched against the
// node path; "*" matches any single keyword and "**" matches any run of
// keywords, including an empty one.
//
// Context, Comment and Plural are templates expanded against the matched
// node. Recognized placeholders:
//
//	{keyword}   the node's keyword
//	{argN}      the node's N-th argument (0-based)
//	{top}       the keyword of the anchor node, i.e. the ancestor matched
//	            by the first concrete pattern element
//	{top.argN}  the N-th argument of the anchor node
type Rule struct {
	Name          string
	Pattern       []string
	Args          []int // translatable argument indices, 0 = first argument
	KeywordIsText bool  // the keyword token itself is the text
	SubtreeIsText bool  // the node's whole subtree is one multi-line text
	Exclude       []string
	ExcludeArg0   []string // rule does not fire when the first argument is one of these
	MinArgs       int      // rule fires only with at least this many arguments, 0 = no bound
	MaxArgs       int      // rule fires only with at most this many arguments, 0 = no bound
	TextSuffix    string   // appended to the extracted text, e.g. " License"
	Context       string
	Comment       string
	Plural        string // template for a synthesized plural form, "" for none
	CountArg      int    // argument holding a plural count, -1 for none
}

// Site is one extraction site contributed by a rule firing on a node.
type Site struct {
	Rule     *Rule
	ArgIndex int  // -1 when the keyword token itself is the text
	Subtree  bool // the node's whole subtree is the text, captured by the pipeline
	Suffix   string
	Context  string
	Comment  string
	PluralID string
	Count    int
	HasCount bool
}

// RuleSet is the static extraction rule table shared verbatim by the
// catalog builder and the substitution engine.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a rule set from a rule table.
func NewRuleSet(rules []Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Rules returns the rule table.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Append adds rules to the table.
func (rs *RuleSet) Append(rules ...Rule) {
	rs.rules = append(rs.rules, rules...)
}

// Match returns every extraction site the rule table declares for the
// node. No site is not an error: the node simply carries no translatable
// text. Two rules claiming the same argument of one node is a
// configuration inconsistency and fails with AmbiguousExtractionError.
func (rs *RuleSet) Match(node *Node) ([]Site, error) {
	var sites []Site
	var claimed map[int]string
	for i := range rs.rules {
		rule := &rs.rules[i]
		anchorIdx, ok := matchPath(rule.Pattern, node.Path)
		if !ok {
			continue
		}
		if rule.KeywordIsText && keywordExcluded(rule.Exclude, node.Keyword) {
			continue
		}
		if rule.MinArgs > 0 && len(node.Args) < rule.MinArgs {
			continue
		}
		if rule.MaxArgs > 0 && len(node.Args) > rule.MaxArgs {
			continue
		}
		if len(rule.ExcludeArg0) > 0 && len(node.Args) > 0 &&
			keywordExcluded(rule.ExcludeArg0, node.Args[0]) {
			continue
		}
		anchor := node.anchorRef(anchorIdx)
		context := expandTemplate(rule.Context, node, anchor)
		comment := expandTemplate(rule.Comment, node, anchor)
		plural := expandTemplate(rule.Plural, node, anchor)
		if rule.SubtreeIsText {
			// A subtree site claims no argument index: the pipeline captures
			// the indented block below the node as one text.
			sites = append(sites, Site{
				Rule:    rule,
				Subtree: true,
				Context: context,
				Comment: comment,
			})
			continue
		}
		count, hasCount := 0, false
		if rule.CountArg >= 0 && rule.CountArg < len(node.Args) {
			if n, err := strconv.Atoi(node.Args[rule.CountArg]); err == nil {
				count, hasCount = n, true
			}
		}
		indices := make([]int, 0, len(rule.Args)+1)
		if rule.KeywordIsText {
			indices = append(indices, -1)
		}
		for _, arg := range rule.Args {
			if arg >= 0 && arg < len(node.Args) {
				indices = append(indices, arg)
			}
		}
		for _, idx := range indices {
			if claimed == nil {
				claimed = make(map[int]string)
			}
			if prev, dup := claimed[idx]; dup {
				return nil, &AmbiguousExtractionError{
					File:  node.File,
					Line:  node.Line.Number,
					Arg:   idx,
					Rules: [2]string{prev, ruleName(rule)},
				}
			}
			claimed[idx] = ruleName(rule)
			sites = append(sites, Site{
				Rule:     rule,
				ArgIndex: idx,
				Suffix:   rule.TextSuffix,
				Context:  context,
				Comment:  comment,
				PluralID: plural,
				Count:    count,
				HasCount: hasCount,
			})
		}
	}
	return sites, nil
}

func ruleName(r *Rule) string {
	if r.Name != "" {
		return r.Name
	}
	name := ""
	for i, p := range r.Pattern {
		if i > 0 {
			name += "/"
		}
		name += p
	}
	return name
}

func keywordExcluded(exclude []string, keyword string) bool {
	for _, kw := range exclude {
		if kw == keyword {
			return true
		}
	}
	return false
}

// matchPath matches a keyword pattern against a node path and returns the
// path index of the element matched by the first concrete pattern element
// (-1 when the pattern is all wildcards).
func matchPath(pattern, path []string) (int, bool) {
	if len(pattern) == 0 {
		return -1, len(path) == 0
	}
	switch pattern[0] {
	case "**":
		for skip := 0; skip <= len(path); skip++ {
			if anchor, ok := matchPath(pattern[1:], path[skip:]); ok {
				if anchor >= 0 {
					return anchor + skip, true
				}
				return -1, true
			}
		}
		return -1, false
	case "*":
		if len(path) == 0 {
			return -1, false
		}
		anchor, ok := matchPath(pattern[1:], path[1:])
		if anchor >= 0 {
			anchor++
		}
		return anchor, ok
	default:
		if len(path) == 0 || path[0] != pattern[0] {
			return -1, false
		}
		if _, ok := matchPath(pattern[1:], path[1:]); !ok {
			return -1, false
		}
		return 0, true
	}
}

// anchorRef resolves a path index to the keyword and arguments of that
// node: the node itself for the last path element, an ancestor otherwise.
func (node *Node) anchorRef(idx int) NodeRef {
	if idx < 0 || idx >= len(node.Path) {
		return NodeRef{Keyword: node.Keyword, Args: node.Args}
	}
	if idx == len(node.Path)-1 {
		return NodeRef{Keyword: node.Keyword, Args: node.Args}
	}
	return node.Ancestors[idx]
}

var templateToken = regexp.MustCompile(`\{(keyword|top|arg[0-9]+|top\.arg[0-9]+)\}`)

func expandTemplate(tmpl string, node *Node, anchor NodeRef) string {
	if tmpl == "" {
		return ""
	}
	return templateToken.ReplaceAllStringFunc(tmpl, func(tok string) string {
		key := tok[1 : len(tok)-1]
		switch {
		case key == "keyword":
			return node.Keyword
		case key == "top":
			return anchor.Keyword
		case len(key) > 7 && key[:7] == "top.arg":
			if n, err := strconv.Atoi(key[7:]); err == nil && n < len(anchor.Args) {
				return anchor.Args[n]
			}
		case len(key) > 3 && key[:3] == "arg":
			if n, err := strconv.Atoi(key[3:]); err == nil && n < len(node.Args) {
				return node.Args[n]
			}
		}
		return ""
	})
}
