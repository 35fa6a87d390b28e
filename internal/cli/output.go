package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/provider"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Invalid filter or preset, failed scenarios
	ExitCommandError = 2 // Command error (bad flags, data unavailable, etc.)
)

// CLI error codes that are not domain error codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeBadArgument = "E002" // Invalid flag or argument
	ErrCodeWriteFailed = "E003" // File write error
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set once the error has been written to the command
	// output, so main does not print it again.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written by the command.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "INVALID_SPEC", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
// In text mode data is printed with fmt.Println.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err in the configured format and returns an ExitError
// carrying the exit code for its category:
//   - INVALID_SPEC → ExitFailure
//   - DATA_UNAVAILABLE and everything else → ExitCommandError
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	return f.FailCode(code, exit, message, err)
}

// FailCode is Fail with an explicit response code and exit code.
func (f *OutputFormatter) FailCode(code string, exit int, message string, err error) error {
	var details any
	var qe *engine.QueryError
	if errors.As(err, &qe) && len(qe.Problems) > 0 {
		details = qe.Problems
	}

	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), details); outErr != nil {
		return outErr
	}
	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}

// classify maps an error to its response code and exit code.
func classify(err error) (string, int) {
	var exitErr *ExitError
	switch {
	case engine.IsInvalidSpec(err):
		return string(engine.ErrCodeInvalidSpec), ExitFailure
	case provider.IsDataUnavailable(err):
		return string(provider.ErrCodeDataUnavailable), ExitCommandError
	case errors.As(err, &exitErr) && exitErr.Code == ExitCommandError:
		return ErrCodeBadArgument, ExitCommandError
	}
	return ErrCodeGeneric, ExitCommandError
}

// renderRecords writes records as a table.
func renderRecords(w io.Writer, records []material.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"id", "formula", "band_gap", "density", "energy_above_hull", "formation_energy"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.ID,
			r.Formula,
			formatFloat(r.BandGap),
			formatFloat(r.Density),
			formatFloat(r.EnergyAboveHull),
			formatFloat(r.FormationEnergy),
		})
	}
	t.Render()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
