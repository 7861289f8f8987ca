// Package flag provides viper-backed accessors for command line flags.
package flag

import (
	"github.com/spf13/viper"
)

// DryRun returns true in dryrun mode.
func DryRun() bool {
	return viper.GetBool("dryrun")
}

// Verbose returns the count of the --verbose flag.
func Verbose() int {
	return viper.GetInt("verbose")
}

// Quiet returns the count of the --quiet flag.
func Quiet() int {
	return viper.GetInt("quiet")
}

// GitHubActionEvent returns the github-action event name which triggers this program.
func GitHubActionEvent() string {
	return viper.GetString("github-action-event")
}

// RulesFile returns the path of a user-supplied extraction rule table.
func RulesFile() string {
	return viper.GetString("rules")
}

// NoLocation returns true if "#: file:line" comments should be omitted
// from the generated template.
func NoLocation() bool {
	return viper.GetBool("no-location")
}

// Force returns true if output safety checks should be bypassed.
func Force() bool {
	return viper.GetBool("force")
}
