package util

import (
	"strings"
	"testing"
)

// lastNode parses source text and returns its final node.
func lastNode(t *testing.T, text string) *Node {
	t.Helper()
	nodes := buildNodes(t, text)
	if len(nodes) == 0 {
		t.Fatal("no nodes parsed")
	}
	return nodes[len(nodes)-1]
}

func TestMatchAnchorTemplates(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "ship-name", Pattern: []string{"**", "ship", "name"}, Args: []int{0},
			Context: "ship", Comment: `[name] of [ship] "{top.arg0}"`},
	})
	node := lastNode(t, "fleet \"Pirates\"\n\tship \"Kestrel\"\n\t\tname \"Wasp\"")
	sites, err := rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	site := sites[0]
	if site.ArgIndex != 0 {
		t.Errorf("ArgIndex = %d, want 0", site.ArgIndex)
	}
	if site.Context != "ship" {
		t.Errorf("Context = %q", site.Context)
	}
	// {top.arg0} resolves against the "ship" ancestor, not "fleet".
	if want := `[name] of [ship] "Kestrel"`; site.Comment != want {
		t.Errorf("Comment = %q, want %q", site.Comment, want)
	}
}

func TestMatchNodeTemplates(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "ship", Pattern: []string{"ship"}, Args: []int{0},
			Context: "ship", Plural: "{arg0}s", Comment: `[ship]: "{arg0}"`},
	})
	node := lastNode(t, `ship "Kestrel"`)
	sites, err := rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	if sites[0].PluralID != "Kestrels" {
		t.Errorf("PluralID = %q, want Kestrels", sites[0].PluralID)
	}
	if want := `[ship]: "Kestrel"`; sites[0].Comment != want {
		t.Errorf("Comment = %q, want %q", sites[0].Comment, want)
	}
}

func TestMatchKeywordIsText(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "conversation-text", Pattern: []string{"conversation", "**", "*"},
			KeywordIsText: true,
			Exclude:       []string{"choice", "label"},
			Context:       "conversation: {top.arg0}"},
	})

	node := lastNode(t, "conversation \"intro\"\n\t`Hello there.`")
	sites, err := rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	if sites[0].ArgIndex != -1 {
		t.Errorf("ArgIndex = %d, want -1", sites[0].ArgIndex)
	}
	if sites[0].Context != "conversation: intro" {
		t.Errorf("Context = %q", sites[0].Context)
	}

	// Structural keywords of the block are excluded.
	node = lastNode(t, "conversation \"intro\"\n\tchoice")
	sites, err = rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Fatalf("excluded keyword produced %d sites", len(sites))
	}
}

func TestMatchNoSiteIsNotAnError(t *testing.T) {
	node := lastNode(t, `unmapped "value"`)
	sites, err := DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Errorf("got %d sites for an unmapped keyword", len(sites))
	}
}

func TestMatchAmbiguousRules(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "first", Pattern: []string{"ship"}, Args: []int{0}},
		{Name: "second", Pattern: []string{"**", "ship"}, Args: []int{0}},
	})
	node := lastNode(t, `ship "Kestrel"`)
	_, err := rs.Match(node)
	if err == nil {
		t.Fatal("two rules claiming one argument did not fail")
	}
	e, ok := err.(*AmbiguousExtractionError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if e.Rules[0] != "first" || e.Rules[1] != "second" {
		t.Errorf("conflicting rules = %v", e.Rules)
	}
}

func TestMatchCountArg(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "payment", Pattern: []string{"payment"}, Args: []int{0}, CountArg: 1},
	})
	node := lastNode(t, `payment "You receive a credit." 5000`)
	sites, err := rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	if !sites[0].HasCount || sites[0].Count != 5000 {
		t.Errorf("count = (%v, %d), want (true, 5000)", sites[0].HasCount, sites[0].Count)
	}

	// A non-numeric count argument means no count.
	node = lastNode(t, `payment "You receive a credit." some`)
	sites, err = rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if sites[0].HasCount {
		t.Error("non-numeric count argument reported HasCount")
	}
}

func TestMatchOutOfRangeArgs(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{Name: "log", Pattern: []string{"log"}, Args: []int{0, 1, 2}},
	})
	node := lastNode(t, `log "People" "Hail" "He said hi."`)
	sites, err := rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 3 {
		t.Fatalf("got %d sites, want 3", len(sites))
	}

	// Fewer arguments than the rule names: only existing ones fire.
	node = lastNode(t, `log "He said hi."`)
	sites, err = rs.Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
}

func TestMatchArgCountBounds(t *testing.T) {
	// A two-argument ship line declares a variant and yields no site.
	node := lastNode(t, `ship "Kestrel" "Kestrel (Armed)"`)
	sites, err := DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Fatalf("variant declaration produced %d sites", len(sites))
	}

	// An npc ship with one argument names the model.
	node = lastNode(t, "mission \"Raid\"\n\tnpc\n\t\tship \"Kestrel\"")
	sites, err = DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 || sites[0].ArgIndex != 0 {
		t.Fatalf("sites = %+v, want one site for argument 0", sites)
	}

	// With two arguments only the variant name is new text.
	node = lastNode(t, "mission \"Raid\"\n\tnpc\n\t\tship \"Kestrel\" \"Raider\"")
	sites, err = DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 || sites[0].ArgIndex != 1 {
		t.Fatalf("sites = %+v, want one site for argument 1", sites)
	}
}

func TestMatchExcludeArg0(t *testing.T) {
	// "dialog phrase <name>" references a phrase block and carries no
	// text of its own.
	node := lastNode(t, "mission \"Raid\"\n\ton complete\n\t\tdialog phrase \"generic payment\"")
	sites, err := DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 0 {
		t.Fatalf("dialog phrase reference produced %d sites", len(sites))
	}

	node = lastNode(t, "mission \"Raid\"\n\ton complete\n\t\tdialog \"Payment received.\"")
	sites, err = DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 || sites[0].ArgIndex != 0 {
		t.Fatalf("sites = %+v, want one site for argument 0", sites)
	}
}

func TestMatchTextSuffix(t *testing.T) {
	node := lastNode(t, "outfit \"Cruiser\"\n\tlicenses\n\t\tNavy")
	sites, err := DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	if sites[0].ArgIndex != -1 || sites[0].Suffix != " License" {
		t.Errorf("site = %+v, want keyword site with suffix", sites[0])
	}
}

func TestMatchSubtreeSite(t *testing.T) {
	node := lastNode(t, `phrase "Friendly Hails"`)
	sites, err := DefaultRules().Match(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 1 || !sites[0].Subtree {
		t.Fatalf("sites = %+v, want one subtree site", sites)
	}
	if sites[0].Context != "" {
		t.Errorf("Context = %q, want empty", sites[0].Context)
	}
	if want := `[phrase]: "Friendly Hails"`; sites[0].Comment != want {
		t.Errorf("Comment = %q, want %q", sites[0].Comment, want)
	}
}

func TestDefaultRulesHaveDistinctNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range DefaultRules().Rules() {
		if rule.Name == "" {
			t.Errorf("rule %s has no name", strings.Join(rule.Pattern, "/"))
			continue
		}
		if seen[rule.Name] {
			t.Errorf("duplicate rule name %q", rule.Name)
		}
		seen[rule.Name] = true
	}
}
