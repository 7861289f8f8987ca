package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/es-l10n/es-po-helper/config"
	"github.com/es-l10n/es-po-helper/flag"
	"github.com/es-l10n/es-po-helper/repository"
	"github.com/es-l10n/es-po-helper/util"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type translateCommand struct {
	cmd *cobra.Command
	O   struct {
		PoFile string
		OutDir string
	}
}

func (v *translateCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "translate --po <XX.po> [<file>|<dir>...]",
		Short: "Apply a translated PO file to game data files",
		Long: `Rewrite game data files, replacing each translatable text that has a
translation in the given PO file. Everything else, indentation, quoting,
comments and untranslated texts, is reproduced byte for byte.

With "-o <dir>" each rewritten file is placed under <dir>, mirroring the
input path. Without it the rewritten files are concatenated to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	v.cmd.Flags().StringVar(&v.O.PoFile,
		"po",
		"",
		"translated PO file to apply, or a bare locale name under the po directory")
	v.cmd.Flags().StringVarP(&v.O.OutDir,
		"output",
		"o",
		"",
		"write rewritten files under this directory")
	v.cmd.Flags().Bool("force",
		false,
		"overwrite existing files and allow writing to a terminal")
	_ = viper.BindPFlag("force", v.cmd.Flags().Lookup("force"))
	_ = v.cmd.MarkFlagRequired("po")

	return v.cmd
}

func (v translateCommand) Execute(args []string) error {
	if v.O.PoFile == "" {
		return NewErrorWithUsage("no --po file for translate command")
	}
	if v.O.OutDir == "" && !flag.Force() && isatty.IsTerminal(os.Stdout.Fd()) {
		return NewStandardError(
			"refuse to write game data to a terminal, use '-o <dir>' or '--force'")
	}

	poFile := v.O.PoFile
	if !util.IsFile(poFile) && !strings.ContainsAny(poFile, `/\`) {
		// A bare locale name resolves against the project's po directory.
		locale := strings.TrimSuffix(poFile, ".po")
		poFile = filepath.Join(repository.PoDir(), locale+".po")
	}
	data, err := os.ReadFile(poFile)
	if err != nil {
		return err
	}
	table, err := util.CompileTranslationTable(data)
	if err != nil {
		return err
	}

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

	tr := util.NewTranslator(rules, table)
	for _, file := range files {
		if err = v.translateFile(tr, file); err != nil {
			return err
		}
	}
	log.Infof("translated %d texts, %d not found in %s",
		tr.Hits, tr.Misses, poFile)
	return nil
}

func (v translateCommand) translateFile(tr *util.Translator, file string) error {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()

	if v.O.OutDir == "" {
		return tr.TranslateReader(file, in, os.Stdout)
	}

	target := filepath.Join(v.O.OutDir, mirrorPath(file))
	if util.Exist(target) && !flag.Force() {
		answer := util.GetUserInput(
			fmt.Sprintf("File %s exists, overwrite (y/N)? ", target), "no")
		if !util.AnswerIsTrue(answer) {
			log.Warnf("skip %s", target)
			return nil
		}
	}
	if err = os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if err = tr.TranslateReader(file, in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// mirrorPath turns an input path into a path that can be joined under the
// output directory.
func mirrorPath(file string) string {
	file = filepath.ToSlash(filepath.Clean(file))
	file = strings.TrimPrefix(file, "/")
	for strings.HasPrefix(file, "../") {
		file = strings.TrimPrefix(file, "../")
	}
	return filepath.FromSlash(file)
}

var translateCmd = translateCommand{}

func init() {
	rootCmd.AddCommand(translateCmd.Command())
}
