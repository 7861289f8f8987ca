package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Exist check if path is exist.
func Exist(name string) bool {
	if _, err := os.Stat(name); err == nil {
		return true
	}
	return false
}

// IsFile returns true if path is exist and is a file.
func IsFile(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return false
	}
	return true
}

// IsDir returns true if path is exist and is a directory.
func IsDir(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || !fi.IsDir() {
		return false
	}
	return true
}

// ListDataFiles expands paths into the corpus file list. A directory
// contributes its ".txt" members recursively, sorted lexicographically so
// catalog output is reproducible across environments; explicit files keep
// the order given.
func ListDataFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.ToSlash(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, arg := range args {
		switch {
		case IsDir(arg):
			var members []string
			err := filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !fi.IsDir() && strings.HasSuffix(path, ".txt") {
					members = append(members, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			sort.Strings(members)
			for _, member := range members {
				add(member)
			}
		case IsFile(arg):
			add(arg)
		default:
			return nil, fmt.Errorf("no such file or directory: %s", arg)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no data files found")
	}
	log.Debugf("found %d data files", len(files))
	return files, nil
}

// GetUserInput reads user input from stdin.
// Prompt is written to stderr so stdout remains clean for redirects.
func GetUserInput(prompt, defaultValue string) string {
	fmt.Fprint(os.Stderr, prompt)

	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	text = strings.TrimSpace(text)

	if text == "" {
		return defaultValue
	}
	return text
}

// AnswerIsTrue indicates answer is a true value
func AnswerIsTrue(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	switch answer {
	case "y", "yes", "t", "true", "on", "1":
		return true
	}
	return false
}
