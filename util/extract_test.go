package util

import (
	"strings"
	"testing"
)

const sampleCorpus = `ship "Kestrel"
	name "Kestrel" # a small fighter
	description "A warship."
`

func TestExtractReader(t *testing.T) {
	cat := NewCatalog()
	err := ExtractReader(DefaultRules(), cat, "data/ships.txt",
		strings.NewReader(sampleCorpus))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	entry := cat.Entries()[0]
	if entry.Context != "ship" || entry.ID != "Kestrel" {
		t.Fatalf("entry 0 = (%q, %q)", entry.Context, entry.ID)
	}
	// Two occurrences of the same (context, text) collapse into one entry.
	if len(entry.Locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(entry.Locations))
	}
	if entry.Locations[0].Line != 1 || entry.Locations[1].Line != 2 {
		t.Errorf("locations = %+v", entry.Locations)
	}
	if entry.PluralID != "Kestrels" {
		t.Errorf("PluralID = %q, want Kestrels", entry.PluralID)
	}
	// The trailing line comment is appended to the rule comment.
	found := false
	for _, c := range entry.Comments {
		if strings.HasSuffix(c, "; a small fighter") {
			found = true
		}
	}
	if !found {
		t.Errorf("line comment not carried into entry comments: %v", entry.Comments)
	}

	entry = cat.Entries()[1]
	if entry.Context != "" || entry.ID != "A warship." {
		t.Errorf("entry 1 = (%q, %q)", entry.Context, entry.ID)
	}
}

func TestExtractReaderConversation(t *testing.T) {
	cat := NewCatalog()
	err := ExtractReader(DefaultRules(), cat, "data/missions.txt",
		strings.NewReader("conversation \"intro\"\n\t`It was a dark\nand stormy\nnight.`\n\tchoice\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	entry := cat.Entries()[0]
	if entry.ID != "It was a dark\nand stormy\nnight." {
		t.Errorf("ID = %q", entry.ID)
	}
	if entry.Context != "conversation: intro" {
		t.Errorf("Context = %q", entry.Context)
	}
	if entry.Locations[0].Line != 2 {
		t.Errorf("location line = %d, want 2", entry.Locations[0].Line)
	}
}

const samplePhrase = "phrase \"Friendly Hails\"\n" +
	"\tword\n" +
	"\t\t\"Hello there!\"\n" +
	"\t\t\"I come in peace.\"\n"

func TestExtractReaderPhraseBlock(t *testing.T) {
	// A phrase block is one multi-line text: the head line plus the whole
	// word tree, re-indented relative to the head.
	cat := NewCatalog()
	err := ExtractReader(DefaultRules(), cat, "data/phrases.txt",
		strings.NewReader(samplePhrase+"government \"Republic\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	entry := cat.Entries()[0]
	if entry.ID != samplePhrase {
		t.Errorf("ID = %q, want %q", entry.ID, samplePhrase)
	}
	if entry.Context != "" {
		t.Errorf("Context = %q, want empty", entry.Context)
	}
	if len(entry.Comments) == 0 ||
		!strings.Contains(entry.Comments[0], `[phrase]: "Friendly Hails"`) {
		t.Errorf("Comments = %v", entry.Comments)
	}
	if entry.Locations[0].Line != 1 {
		t.Errorf("location line = %d, want 1", entry.Locations[0].Line)
	}
}

func TestExtractReaderPhraseBlockAtEOF(t *testing.T) {
	// A block still open at end of file is flushed. Blank and comment
	// lines inside the block are not part of the text.
	cat := NewCatalog()
	input := "phrase \"Friendly Hails\"\n" +
		"\tword\n" +
		"\t# historical greetings\n" +
		"\n" +
		"\t\t\"Hello there!\"\n"
	err := ExtractReader(DefaultRules(), cat, "data/phrases.txt",
		strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	want := "phrase \"Friendly Hails\"\n\tword\n\t\t\"Hello there!\"\n"
	if entry := cat.Entries()[0]; entry.ID != want {
		t.Errorf("ID = %q, want %q", entry.ID, want)
	}
}

func TestExtractReaderNewsBlocks(t *testing.T) {
	cat := NewCatalog()
	input := "news \"rumors\"\n" +
		"\tname\n" +
		"\t\tword\n" +
		"\t\t\t\"Old Bartender\"\n" +
		"\tmessage\n" +
		"\t\tword\n" +
		"\t\t\t\"They say the fleet is hiring.\"\n"
	err := ExtractReader(DefaultRules(), cat, "data/news.txt",
		strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	name := cat.Entries()[0]
	if want := "name\n\tword\n\t\t\"Old Bartender\"\n"; name.ID != want {
		t.Errorf("name ID = %q, want %q", name.ID, want)
	}
	if len(name.Comments) == 0 ||
		!strings.Contains(name.Comments[0], `[name] of [news]: "rumors"`) {
		t.Errorf("name Comments = %v", name.Comments)
	}
	message := cat.Entries()[1]
	if want := "message\n\tword\n\t\t\"They say the fleet is hiring.\"\n"; message.ID != want {
		t.Errorf("message ID = %q, want %q", message.ID, want)
	}
}

func TestExtractReaderLicenseSuffix(t *testing.T) {
	cat := NewCatalog()
	input := "outfit \"Cruiser\"\n" +
		"\tlicenses\n" +
		"\t\tNavy\n"
	err := ExtractReader(DefaultRules(), cat, "data/outfits.txt",
		strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, entry := range cat.Entries() {
		if entry.ID == "Navy License" {
			found = true
		}
	}
	if !found {
		t.Errorf("no \"Navy License\" entry: %+v", cat.Entries())
	}
}

func TestExtractReaderUnterminatedString(t *testing.T) {
	cat := NewCatalog()
	err := ExtractReader(DefaultRules(), cat, "data/bad.txt",
		strings.NewReader("ship \"Kestrel\"\n\tdescription \"never closed\n"))
	if err == nil {
		t.Fatal("unterminated string did not fail")
	}
	if !strings.Contains(err.Error(), "unterminated") {
		t.Errorf("error = %v", err)
	}
}

func TestExtractReaderMultipleFiles(t *testing.T) {
	cat := NewCatalog()
	for _, file := range []string{"data/a.txt", "data/b.txt"} {
		err := ExtractReader(DefaultRules(), cat, file,
			strings.NewReader("ship \"Kestrel\"\n"))
		if err != nil {
			t.Fatal(err)
		}
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	if len(cat.Entries()[0].Locations) != 2 {
		t.Errorf("locations = %+v", cat.Entries()[0].Locations)
	}
}
