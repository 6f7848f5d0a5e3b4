// Package perms holds the file modes dixa-mcp creates files with.
package perms

import "os"

const (
	// RegularFile is used for the configuration file written by 'init'.
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// LogFile is used for the log file, which records customer and conversation identifiers.
	// Mode 0600: owner read/write only.
	LogFile os.FileMode = 0o600
)
