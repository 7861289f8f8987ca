package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/es-l10n/es-po-helper/util"
)

func writeRules(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRulesDefault(t *testing.T) {
	rs, err := LoadRules("")
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.Rules()) != len(util.DefaultRules().Rules()) {
		t.Errorf("empty path did not return the built-in table")
	}
}

func TestLoadRulesYAML(t *testing.T) {
	path := writeRules(t, "rules.yaml", `rules:
  - name: greeting
    path: ["greeting"]
    args: [0]
    context: "greeting"
    plural: "{arg0}s"
  - name: farewell
    path: ["farewell", "*"]
    keyword_is_text: true
    exclude: ["goto"]
    count_arg: 1
  - name: banner
    path: ["banner"]
    args: [1]
    min_args: 2
    max_args: 3
    exclude_arg0: ["ref"]
    text_suffix: " Banner"
  - name: chant
    path: ["chant"]
    subtree_is_text: true
`)
	rs, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	rules := rs.Rules()
	if len(rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(rules))
	}
	if rules[0].Name != "greeting" || rules[0].Context != "greeting" {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	// CountArg defaults to -1 when absent.
	if rules[0].CountArg != -1 {
		t.Errorf("rule 0 CountArg = %d, want -1", rules[0].CountArg)
	}
	if !rules[1].KeywordIsText || rules[1].CountArg != 1 {
		t.Errorf("rule 1 = %+v", rules[1])
	}
	if len(rules[1].Exclude) != 1 || rules[1].Exclude[0] != "goto" {
		t.Errorf("rule 1 exclude = %v", rules[1].Exclude)
	}
	if rules[2].MinArgs != 2 || rules[2].MaxArgs != 3 || rules[2].TextSuffix != " Banner" {
		t.Errorf("rule 2 = %+v", rules[2])
	}
	if len(rules[2].ExcludeArg0) != 1 || rules[2].ExcludeArg0[0] != "ref" {
		t.Errorf("rule 2 exclude_arg0 = %v", rules[2].ExcludeArg0)
	}
	if !rules[3].SubtreeIsText {
		t.Errorf("rule 3 = %+v", rules[3])
	}
}

func TestLoadRulesJSON(t *testing.T) {
	path := writeRules(t, "rules.json", `{
  "rules": [
    {
      "name": "greeting",
      "path": ["greeting"],
      "args": [0, 1],
      "context": "greeting",
    },
  ],
}`)
	// Trailing commas are tolerated in JSON rules files.
	rs, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	rules := rs.Rules()
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	if rules[0].Name != "greeting" || len(rules[0].Args) != 2 {
		t.Errorf("rule 0 = %+v", rules[0])
	}
}

func TestLoadRulesExtend(t *testing.T) {
	path := writeRules(t, "rules.yaml", `extend: true
rules:
  - name: greeting
    path: ["greeting"]
    args: [0]
`)
	rs, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	want := len(util.DefaultRules().Rules()) + 1
	if len(rs.Rules()) != want {
		t.Errorf("got %d rules, want %d", len(rs.Rules()), want)
	}
	last := rs.Rules()[len(rs.Rules())-1]
	if last.Name != "greeting" {
		t.Errorf("last rule = %+v", last)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "no-such.yaml")); err == nil {
		t.Error("missing file did not fail")
	}
	if _, err := LoadRules(writeRules(t, "bad.yaml", "rules: [unclosed")); err == nil {
		t.Error("malformed yaml did not fail")
	}
	if _, err := LoadRules(writeRules(t, "empty.yaml", "rules: []\n")); err == nil {
		t.Error("empty rule table did not fail")
	}
	if _, err := LoadRules(writeRules(t, "nopath.yaml", "rules:\n  - name: x\n")); err == nil {
		t.Error("rule without path did not fail")
	}
}
