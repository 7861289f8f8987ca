package util

import (
	"os"
)

// PoStats are entry statistics of one PO or POT file.
type PoStats struct {
	File         string `json:"file"`
	Entries      int    `json:"entries"`
	Translated   int    `json:"translated"`
	Untranslated int    `json:"untranslated"`
	Plural       int    `json:"plural"`
	Contexts     int    `json:"contexts"`
}

// CountPoStats parses one PO or POT file and counts its entries. An entry
// counts as translated when its msgstr, or any of its plural msgstr
// forms, is non-empty.
func CountPoStats(file string) (*PoStats, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	entries, _, err := ParsePoEntries(data)
	if err != nil {
		return nil, err
	}

	stats := &PoStats{File: file}
	contexts := make(map[string]bool)
	for _, entry := range entries {
		stats.Entries++
		if entry.MsgIDPlural != "" {
			stats.Plural++
		}
		if entry.MsgCtxt != "" {
			contexts[entry.MsgCtxt] = true
		}
		translated := entry.MsgStr != ""
		for _, form := range entry.MsgStrPlural {
			if form != "" {
				translated = true
			}
		}
		if translated {
			stats.Translated++
		} else {
			stats.Untranslated++
		}
	}
	stats.Contexts = len(contexts)
	return stats, nil
}
