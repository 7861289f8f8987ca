package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/es-l10n/es-po-helper/util"
	"github.com/spf13/cobra"
)

type statCommand struct {
	cmd *cobra.Command
	O   struct {
		JSON bool
	}
}

func (v *statCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "stat <file.pot>...",
		Short: "Report statistics for PO and POT files",
		Long: `Report entry statistics for PO and POT files:
  entries      - number of distinct entries
  translated   - entries with non-empty translation
  untranslated - entries with empty msgstr
  plural       - entries declaring a plural form
  contexts     - number of distinct msgctxt values`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	v.cmd.Flags().BoolVar(&v.O.JSON,
		"json",
		false,
		"report in JSON format")

	return v.cmd
}

func (v statCommand) Execute(args []string) error {
	if len(args) == 0 {
		return NewErrorWithUsage("no argument for stat command")
	}

	var all []*util.PoStats
	for _, file := range args {
		if !util.IsFile(file) {
			return NewErrorWithUsage("file does not exist: " + file)
		}
		stats, err := util.CountPoStats(file)
		if err != nil {
			return err
		}
		all = append(all, stats)
	}

	if v.O.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(all) == 1 {
			return enc.Encode(all[0])
		}
		return enc.Encode(all)
	}

	for _, stats := range all {
		title := fmt.Sprintf("PO file: %s", stats.File)
		fmt.Println(title)
		fmt.Println(strings.Repeat("-", len(title)))
		fmt.Printf("  entries:      %d\n", stats.Entries)
		fmt.Printf("  translated:   %d\n", stats.Translated)
		fmt.Printf("  untranslated: %d\n", stats.Untranslated)
		fmt.Printf("  plural:       %d\n", stats.Plural)
		fmt.Printf("  contexts:     %d\n", stats.Contexts)
	}
	return nil
}

var statCmd = statCommand{}

func init() {
	rootCmd.AddCommand(statCmd.Command())
}
