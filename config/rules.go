// Package config provides configuration structures and loading for the
// extraction rule table.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/es-l10n/es-po-helper/util"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// RuleConfig is one extraction rule of a rules file.
type RuleConfig struct {
	Name          string   `yaml:"name"`
	Path          []string `yaml:"path"`
	Args          []int    `yaml:"args"`
	KeywordIsText bool     `yaml:"keyword_is_text"`
	SubtreeIsText bool     `yaml:"subtree_is_text"`
	Exclude       []string `yaml:"exclude"`
	ExcludeArg0   []string `yaml:"exclude_arg0"`
	MinArgs       int      `yaml:"min_args"`
	MaxArgs       int      `yaml:"max_args"`
	TextSuffix    string   `yaml:"text_suffix"`
	Context       string   `yaml:"context"`
	Comment       string   `yaml:"comment"`
	Plural        string   `yaml:"plural"`
	CountArg      *int     `yaml:"count_arg"`
}

// RulesFile is the top level document of a rules file. When Extend is
// true the rules are appended to the built-in table, otherwise they
// replace it.
type RulesFile struct {
	Extend bool         `yaml:"extend"`
	Rules  []RuleConfig `yaml:"rules"`
}

// LoadRules reads a rule table. An empty path returns the built-in table.
// YAML is the canonical format; ".json" files are accepted and parsed
// tolerantly with gjson.
func LoadRules(path string) (*util.RuleSet, error) {
	if path == "" {
		return util.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc RulesFile
	if strings.HasSuffix(path, ".json") {
		doc = parseJSONRules(data)
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("cannot parse rules file %s: %w", path, err)
		}
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	rules := make([]util.Rule, 0, len(doc.Rules))
	for i, rc := range doc.Rules {
		if len(rc.Path) == 0 {
			return nil, fmt.Errorf("rules file %s: rule #%d has an empty path", path, i+1)
		}
		rule := util.Rule{
			Name:          rc.Name,
			Pattern:       rc.Path,
			Args:          rc.Args,
			KeywordIsText: rc.KeywordIsText,
			SubtreeIsText: rc.SubtreeIsText,
			Exclude:       rc.Exclude,
			ExcludeArg0:   rc.ExcludeArg0,
			MinArgs:       rc.MinArgs,
			MaxArgs:       rc.MaxArgs,
			TextSuffix:    rc.TextSuffix,
			Context:       rc.Context,
			Comment:       rc.Comment,
			Plural:        rc.Plural,
			CountArg:      -1,
		}
		if rc.CountArg != nil {
			rule.CountArg = *rc.CountArg
		}
		rules = append(rules, rule)
	}

	if doc.Extend {
		rs := util.DefaultRules()
		rs.Append(rules...)
		log.Debugf("loaded %d extra rules from %s", len(rules), path)
		return rs, nil
	}
	log.Debugf("loaded %d rules from %s", len(rules), path)
	return util.NewRuleSet(rules), nil
}

// parseJSONRules parses a JSON rules file with gjson, which tolerates
// minor format slips like trailing commas.
func parseJSONRules(data []byte) RulesFile {
	var doc RulesFile
	doc.Extend = gjson.GetBytes(data, "extend").Bool()
	gjson.GetBytes(data, "rules").ForEach(func(_, r gjson.Result) bool {
		rc := RuleConfig{
			Name:          r.Get("name").String(),
			KeywordIsText: r.Get("keyword_is_text").Bool(),
			SubtreeIsText: r.Get("subtree_is_text").Bool(),
			MinArgs:       int(r.Get("min_args").Int()),
			MaxArgs:       int(r.Get("max_args").Int()),
			TextSuffix:    r.Get("text_suffix").String(),
			Context:       r.Get("context").String(),
			Comment:       r.Get("comment").String(),
			Plural:        r.Get("plural").String(),
		}
		for _, p := range r.Get("path").Array() {
			rc.Path = append(rc.Path, p.String())
		}
		for _, a := range r.Get("args").Array() {
			rc.Args = append(rc.Args, int(a.Int()))
		}
		for _, e := range r.Get("exclude").Array() {
			rc.Exclude = append(rc.Exclude, e.String())
		}
		for _, e := range r.Get("exclude_arg0").Array() {
			rc.ExcludeArg0 = append(rc.ExcludeArg0, e.String())
		}
		if c := r.Get("count_arg"); c.Exists() {
			n := int(c.Int())
			rc.CountArg = &n
		}
		doc.Rules = append(doc.Rules, rc)
		return true
	})
	return doc
}
