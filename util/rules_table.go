package util

// conversationExclude lists the structural keywords of conversation
// blocks, which are never themselves translatable text.
var conversationExclude = []string{
	"apply", "branch", "choice", "goto", "label", "name", "scene", "action", "to",
}

// DefaultRules returns the built-in rule table for Endless Sky style
// corpora. The table is domain data: message contexts follow the
// conventions of the upstream translation project (ship names under
// "ship", outfits under "outfit", conversations under
// "conversation: <name>" or "mission: <name>", and so on). Corpora with
// different conventions supply their own table via a rules file.
func DefaultRules() *RuleSet {
	rules := []Rule{
		// Ships. The model name doubles as the display name, with a
		// default plural of "<name>s" unless the corpus overrides it.
		// A two-argument ship line declares a variant of an existing
		// model and carries no new text.
		{Name: "ship", Pattern: []string{"ship"}, Args: []int{0}, MaxArgs: 1,
			Context: "ship", Plural: "{arg0}s", Comment: `[ship]: "{arg0}"`},
		{Name: "ship-name", Pattern: []string{"**", "ship", "name"}, Args: []int{0},
			Context: "ship", Comment: `[name] of [ship] "{top.arg0}"`},
		{Name: "ship-plural", Pattern: []string{"**", "ship", "plural"}, Args: []int{0},
			Context: "ship", Comment: `plural form of [ship] "{top.arg0}"`},
		{Name: "ship-noun", Pattern: []string{"**", "ship", "noun"}, Args: []int{0},
			Context: "ship", Comment: `[noun] of [ship] "{top.arg0}"`},
		{Name: "ship-model-name", Pattern: []string{"**", "ship", "model name"}, Args: []int{0},
			Context: "ship", Comment: `[model name] of [ship] "{top.arg0}"`},
		{Name: "ship-description", Pattern: []string{"**", "ship", "description"}, Args: []int{0},
			Comment: `[description] of [ship] "{top.arg0}"`},
		{Name: "ship-license", Pattern: []string{"**", "ship", "attributes", "licenses", "*"},
			KeywordIsText: true, TextSuffix: " License",
			Context: "license: ", Comment: "[licenses] of [ship]"},
		// An npc ship names a model, or a model plus a variant; only the
		// variant name is new text.
		{Name: "npc-ship", Pattern: []string{"**", "npc", "ship"}, Args: []int{0}, MaxArgs: 1,
			Context: "ship", Comment: "[ship] of [npc]"},
		{Name: "npc-ship-variant", Pattern: []string{"**", "npc", "ship"}, Args: []int{1}, MinArgs: 2,
			Context: "ship", Comment: "[ship] of [npc]"},

		// Outfits.
		{Name: "outfit", Pattern: []string{"outfit"}, Args: []int{0},
			Context: "outfit", Plural: "{arg0}s", Comment: `[outfit]: "{arg0}"`},
		{Name: "outfit-plural", Pattern: []string{"outfit", "plural"}, Args: []int{0},
			Context: "outfit", Comment: `plural form of [outfit] "{top.arg0}"`},
		{Name: "outfit-description", Pattern: []string{"outfit", "description"}, Args: []int{0},
			Comment: `[description] of [outfit] "{top.arg0}"`},
		{Name: "outfit-license", Pattern: []string{"outfit", "licenses", "*"},
			KeywordIsText: true, TextSuffix: " License",
			Context: "license: ", Comment: `[licenses] of [outfit] "{top.arg0}"`},

		// Planets and systems.
		{Name: "planet", Pattern: []string{"**", "planet"}, Args: []int{0},
			Context: "planet", Comment: `[planet]: "{arg0}"`},
		{Name: "planet-name", Pattern: []string{"**", "planet", "name"}, Args: []int{0},
			Context: "planet", Comment: `[name] of [planet] "{top.arg0}"`},
		{Name: "planet-description", Pattern: []string{"**", "planet", "description"}, Args: []int{0},
			Comment: `[description] of [planet] "{top.arg0}"`},
		{Name: "planet-spaceport", Pattern: []string{"**", "planet", "spaceport"}, Args: []int{0},
			Comment: `[spaceport] of [planet] "{top.arg0}"`},
		{Name: "system", Pattern: []string{"**", "system"}, Args: []int{0},
			Context: "system", Comment: `[system]: "{arg0}"`},
		{Name: "system-name", Pattern: []string{"**", "system", "name"}, Args: []int{0},
			Context: "system", Comment: `[name] of [system] "{top.arg0}"`},

		// Governments.
		{Name: "government-display-name",
			Pattern: []string{"**", "government", "display name"}, Args: []int{0},
			Context: "government", Comment: `[display name] of [government] "{top.arg0}"`},

		// Missions.
		{Name: "mission-name", Pattern: []string{"mission", "name"}, Args: []int{0},
			Context: "mission", Comment: `[name] of [mission] "{top.arg0}"`},
		{Name: "mission-description", Pattern: []string{"mission", "description"}, Args: []int{0},
			Comment: `[description] of [mission] "{top.arg0}"`},
		{Name: "mission-blocked", Pattern: []string{"mission", "blocked"}, Args: []int{0},
			Comment: `[blocked] in [mission] "{top.arg0}"`},
		{Name: "mission-clearance", Pattern: []string{"mission", "clearance"}, Args: []int{0},
			Comment: `[clearance] in [mission] "{top.arg0}"`},
		{Name: "mission-cargo", Pattern: []string{"mission", "cargo"}, Args: []int{0},
			Context: "cargo", Comment: `[cargo] in [mission] "{top.arg0}"`},
		{Name: "mission-illegal", Pattern: []string{"mission", "**", "illegal"}, Args: []int{1},
			Comment: `[illegal] in [mission] "{top.arg0}"`},
		// "dialog phrase <name>" references a phrase block instead of
		// carrying text of its own.
		{Name: "mission-dialog", Pattern: []string{"mission", "**", "dialog"}, Args: []int{0},
			ExcludeArg0: []string{"phrase"},
			Comment:     `[dialog] in [mission] "{top.arg0}"`},
		{Name: "mission-log", Pattern: []string{"mission", "on", "log"}, Args: []int{0, 1, 2},
			Context: "log", Comment: `[log] in [mission] "{top.arg0}"`},

		// Conversations, either top level or nested in a mission.
		{Name: "conversation-text",
			Pattern: []string{"conversation", "**", "*"}, KeywordIsText: true,
			Exclude: conversationExclude,
			Context: "conversation: {top.arg0}", Comment: `[conversation]: "{top.arg0}"`},
		{Name: "mission-conversation-text",
			Pattern: []string{"mission", "**", "conversation", "**", "*"}, KeywordIsText: true,
			Exclude: conversationExclude,
			Context: "mission: {top.arg0}", Comment: `[conversation] in [mission] "{top.arg0}"`},

		// Trade.
		{Name: "commodity", Pattern: []string{"trade", "commodity"}, Args: []int{0},
			Context: "commodity", Comment: `[commodity] "{arg0}"`},
		{Name: "commodity-item", Pattern: []string{"trade", "commodity", "*"},
			KeywordIsText: true, Context: "commodity", Comment: `[commodity] "{top.arg0}"`},

		// Miscellaneous top-level blocks.
		{Name: "category-item", Pattern: []string{"category", "*"},
			KeywordIsText: true, Context: "category", Comment: `[category]: "{top.arg0}"`},
		{Name: "interface-button", Pattern: []string{"interface", "button"}, Args: []int{1},
			Context: "interface", Comment: `[button] in [interface] "{top.arg0}"`},
		{Name: "interface-label", Pattern: []string{"interface", "label"}, Args: []int{0},
			Context: "interface", Comment: `[label] in [interface] "{top.arg0}"`},
		{Name: "interface-string", Pattern: []string{"interface", "string"}, Args: []int{1},
			Context: "interface", Comment: `[string] in [interface] "{top.arg0}"`},
		{Name: "rating-item", Pattern: []string{"rating", "*"},
			KeywordIsText: true, Context: "rating", Comment: `[rating]: "{top.arg0}"`},
		{Name: "minable", Pattern: []string{"minable"}, Args: []int{0},
			Context: "minable", Comment: `[minable]: "{arg0}"`},
		{Name: "minable-name", Pattern: []string{"minable", "name"}, Args: []int{0},
			Context: "minable", Comment: `[name] of [minable] "{top.arg0}"`},
		{Name: "galaxy-sprite", Pattern: []string{"galaxy", "sprite"}, Args: []int{0},
			Context: "galaxy", Comment: `[sprite] of [galaxy] "{top.arg0}"`},
		{Name: "language-fullname", Pattern: []string{"language", "fullname", "*"},
			KeywordIsText: true, Context: "preferences", Comment: `[fullname] of [language] "{top.arg0}"`},
		{Name: "help-text", Pattern: []string{"help", "*"},
			KeywordIsText: true, Comment: `[help]: "{top.arg0}"`},
		{Name: "landing-message", Pattern: []string{"landing message"}, Args: []int{0},
			Comment: "[landing message]"},
		{Name: "start-name", Pattern: []string{"start", "name"}, Args: []int{0},
			Context: "start", Comment: "[name] of [start]"},
		{Name: "start-description", Pattern: []string{"start", "description"}, Args: []int{0},
			Comment: "[description] of [start]"},
		{Name: "tip", Pattern: []string{"tip"}, Args: []int{0},
			Context: "Label of Attribute", Comment: "[tip]"},
		{Name: "tip-text", Pattern: []string{"tip", "*"},
			KeywordIsText: true, Context: "Label of Attribute", Comment: `[tip]: "{top.arg0}"`},
		{Name: "person-ship", Pattern: []string{"person", "ship"}, Args: []int{0, 1},
			Context: "ship", Comment: `[ship] of [person] "{top.arg0}"`},

		// Phrase and news blocks are each one multi-line text, so a
		// translator can reorder and rebalance the whole word tree.
		{Name: "phrase", Pattern: []string{"phrase"},
			SubtreeIsText: true, Comment: `[phrase]: "{arg0}"`},
		{Name: "dialog-phrase", Pattern: []string{"**", "dialog", "phrase"},
			SubtreeIsText: true, Comment: `[phrase]: "{arg0}"`},
		{Name: "person-phrase", Pattern: []string{"person", "phrase"},
			SubtreeIsText: true, Comment: `[phrase]: "{arg0}"`},
		{Name: "news-name", Pattern: []string{"news", "name"},
			SubtreeIsText: true, Comment: `[name] of [news]: "{top.arg0}"`},
		{Name: "news-message", Pattern: []string{"news", "message"},
			SubtreeIsText: true, Comment: `[message] of [news]: "{top.arg0}"`},
	}
	// None of the built-in rules resolves a plural count from the data.
	for i := range rules {
		rules[i].CountArg = -1
	}
	return NewRuleSet(rules)
}
