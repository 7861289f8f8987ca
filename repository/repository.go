// Package repository provides model for the project holding the game data
// corpus. Data corpora are normally maintained in a git worktree, and
// per-project defaults live in git config.
package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jiangxin/goconfig"
	log "github.com/sirupsen/logrus"
)

// Repository holds repository and error.
type Repository struct {
	repository *goconfig.Repository
	error      error
}

var theRepository Repository

// Open will try to find repository in dir.
func (v *Repository) Open(dir string) error {
	v.repository, v.error = goconfig.FindRepository(dir)
	return v.error
}

// OpenRepository will try to find repository in dir.
func OpenRepository(dir string) {
	// Commands work outside a repository too; callers check Opened().
	_ = theRepository.Open(dir)
}

// Opened returns true if a repository was successfully opened (e.g. when
// running inside a git worktree).
func Opened() bool {
	return theRepository.error == nil && theRepository.repository != nil
}

// Err returns the error from the last OpenRepository call, or nil if open
// succeeded.
func Err() error {
	return theRepository.error
}

// RequireOpened returns Err() if the repository is not opened.
func RequireOpened() error {
	if !Opened() {
		if theRepository.error != nil {
			return theRepository.error
		}
		return fmt.Errorf("not in a git repository")
	}
	return nil
}

func assertRepositoryNotNil() {
	if theRepository.error != nil {
		log.Fatal(theRepository.error)
	} else if theRepository.repository == nil {
		log.Fatal("TheRepository is nil")
	}
}

// WorkDir returns root dir of worktree.
func WorkDir() string {
	assertRepositoryNotNil()
	return theRepository.repository.WorkDir()
}

// WorkDirOrCwd returns WorkDir() when a repository is opened, otherwise
// the current working directory.
func WorkDirOrCwd() string {
	if Opened() {
		return theRepository.repository.WorkDir()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Config is git config for the repository.
func Config() goconfig.GitConfig {
	return theRepository.repository.Config()
}

// DataDir returns the corpus directory: the "po-helper.datadir" config
// value when set, the conventional "data" directory otherwise.
func DataDir() string {
	if Opened() {
		if dir := Config().Get("po-helper.datadir"); dir != "" {
			return filepath.Join(WorkDir(), dir)
		}
		return filepath.Join(WorkDir(), "data")
	}
	return "data"
}

// PoDir returns the translation directory: the "po-helper.podir" config
// value when set, "po" otherwise.
func PoDir() string {
	if Opened() {
		if dir := Config().Get("po-helper.podir"); dir != "" {
			return filepath.Join(WorkDir(), dir)
		}
		return filepath.Join(WorkDir(), "po")
	}
	return "po"
}
