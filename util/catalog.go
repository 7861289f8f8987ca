package util

// Location is one source occurrence of a catalog entry.
type Location struct {
	File string
	Line int
}

// CatalogEntry is one deduplicated translatable message with its
// aggregated metadata.
type CatalogEntry struct {
	Context   string
	ID        string
	PluralID  string
	Locations []Location // insertion order, duplicates suppressed
	Comments  []string   // insertion order, duplicates suppressed
}

// Catalog is the deduplicated collection of translatable messages found in
// a corpus, keyed by (context, id) and kept in insertion order so that
// serialization is deterministic for a given file order.
type Catalog struct {
	entries []*CatalogEntry
	index   map[string]int
}

// msgKey joins context and id the way gettext catalogs do.
func msgKey(context, id string) string {
	if context == "" {
		return id
	}
	return context + "\x04" + id
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Record adds one discovered occurrence. An empty text is defined as "not
// present" and ignored. Occurrences with equal (context, text) collapse
// into one entry: locations and comments union in, and a plural form is
// adopted when the existing entry lacks one.
func (c *Catalog) Record(text, context, plural, file string, line int, comment string) {
	if text == "" {
		return
	}
	key := msgKey(context, text)
	idx, ok := c.index[key]
	if !ok {
		idx = len(c.entries)
		c.index[key] = idx
		c.entries = append(c.entries, &CatalogEntry{
			Context:  context,
			ID:       text,
			PluralID: plural,
		})
	}
	entry := c.entries[idx]
	if entry.PluralID == "" && plural != "" {
		entry.PluralID = plural
	}
	entry.addLocation(file, line)
	entry.addComment(comment)
}

// Entries returns all entries in insertion order.
func (c *Catalog) Entries() []*CatalogEntry {
	return c.entries
}

// Len returns the number of distinct entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func (e *CatalogEntry) addLocation(file string, line int) {
	for _, loc := range e.Locations {
		if loc.File == file && loc.Line == line {
			return
		}
	}
	e.Locations = append(e.Locations, Location{File: file, Line: line})
}

func (e *CatalogEntry) addComment(comment string) {
	if comment == "" {
		return
	}
	for _, c := range e.Comments {
		if c == comment {
			return
		}
	}
	e.Comments = append(e.Comments, comment)
}
