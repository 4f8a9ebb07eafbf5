package interfaces

import "strings"

// Report targets
const (
	TargetNone   = ""
	TargetStdout = "stdout"
	TargetStderr = "stderr"
	filePrefix   = "file:"
)

// ReportWriter manages the destinations a run summary can be written to
type ReportWriter interface {
	// WriteToStdout writes content to standard output
	WriteToStdout(content string) error

	// WriteToStderr writes content to standard error
	WriteToStderr(content string) error

	// WriteToFile writes content to the specified file path
	WriteToFile(content string, path string) error
}

// IsValidTarget reports whether target names a known report destination
func IsValidTarget(target string) bool {
	switch target {
	case TargetNone, TargetStdout, TargetStderr:
		return true
	}
	return strings.HasPrefix(target, filePrefix) && len(target) > len(filePrefix)
}

// FilePath returns the path of a file: target and whether target is one
func FilePath(target string) (string, bool) {
	if !strings.HasPrefix(target, filePrefix) {
		return "", false
	}
	return strings.TrimPrefix(target, filePrefix), true
}
