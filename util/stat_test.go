package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCountPoStats(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fr.po")
	if err := os.WriteFile(file, samplePo, 0644); err != nil {
		t.Fatal(err)
	}
	stats, err := CountPoStats(file)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 4 {
		t.Errorf("Entries = %d, want 4", stats.Entries)
	}
	if stats.Translated != 3 {
		t.Errorf("Translated = %d, want 3", stats.Translated)
	}
	if stats.Untranslated != 1 {
		t.Errorf("Untranslated = %d, want 1", stats.Untranslated)
	}
	if stats.Plural != 1 {
		t.Errorf("Plural = %d, want 1", stats.Plural)
	}
	if stats.Contexts != 1 {
		t.Errorf("Contexts = %d, want 1", stats.Contexts)
	}
}

func TestCountPoStatsMissingFile(t *testing.T) {
	if _, err := CountPoStats(filepath.Join(t.TempDir(), "no-such.po")); err == nil {
		t.Fatal("missing file did not fail")
	}
}
