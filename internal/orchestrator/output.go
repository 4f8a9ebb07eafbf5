package orchestrator

import (
	"fmt"
	"io"
	"os"

	"plusverify/internal/interfaces"
)

// ReportWriter implements the ReportWriter interface
type ReportWriter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewReportWriter creates a report writer bound to the process streams
func NewReportWriter() interfaces.ReportWriter {
	return &ReportWriter{stdout: os.Stdout, stderr: os.Stderr}
}

// WriteToStdout writes content to standard output
func (w *ReportWriter) WriteToStdout(content string) error {
	_, err := fmt.Fprintln(w.stdout, content)
	return err
}

// WriteToStderr writes content to standard error
func (w *ReportWriter) WriteToStderr(content string) error {
	_, err := fmt.Fprintln(w.stderr, content)
	return err
}

// WriteToFile writes content to the specified file path
func (w *ReportWriter) WriteToFile(content string, path string) error {
	return os.WriteFile(path, []byte(content+"\n"), 0644)
}
