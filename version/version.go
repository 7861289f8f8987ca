// Package version provides the version number of this tool.
package version

// Version of es-po-helper.
var Version = "0.1.0"
