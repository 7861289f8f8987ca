package cmd

import (
	"os"

	"github.com/es-l10n/es-po-helper/config"
	"github.com/es-l10n/es-po-helper/flag"
	"github.com/es-l10n/es-po-helper/repository"
	"github.com/es-l10n/es-po-helper/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type extractCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
	}
}

func (v *extractCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "extract [<file>|<dir>...]",
		Short: "Extract translatable text into a POT template",
		Long: `Scan game data files and collect every translatable text into a
gettext POT template. Directories are scanned recursively for ".txt"
files. Without arguments the corpus directory of the enclosing
repository is scanned.

Identical texts found at several places collapse into a single entry
that lists all locations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	v.cmd.Flags().StringVarP(&v.O.Output,
		"output",
		"o",
		"",
		"write the template to this file instead of stdout")
	v.cmd.Flags().Bool("no-location",
		false,
		"no filename and location in comment for entry")
	_ = viper.BindPFlag("no-location", v.cmd.Flags().Lookup("no-location"))

	return v.cmd
}

func (v extractCommand) Execute(args []string) error {
	rules, err := config.LoadRules(flag.RulesFile())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{repository.DataDir()}
	}
	files, err := util.ListDataFiles(args)
	if err != nil {
		return NewErrorWithUsage(err.Error())
	}

	cat := util.NewCatalog()
	for _, file := range files {
		log.Debugf("extracting from %s", file)
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = util.ExtractReader(rules, cat, file, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	log.Infof("extracted %d entries from %d files", cat.Len(), len(files))

	opts := util.POTOptions{
		NoLocation: flag.NoLocation(),
	}
	if v.O.Output == "" {
		return util.WritePOT(os.Stdout, cat, opts)
	}
	out, err := os.Create(v.O.Output)
	if err != nil {
		return err
	}
	if err = util.WritePOT(out, cat, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var extractCmd = extractCommand{}

func init() {
	rootCmd.AddCommand(extractCmd.Command())
}
