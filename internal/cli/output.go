package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Every case passed or was recorded
	ExitFailure      = 1 // One or more cases failed or could not be recorded
	ExitCommandError = 2 // Environment error (build failure, missing program, scratch directory, config)
)

// ExitError carries the process exit code for a command error.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional cause

	// Reported means the formatter already showed the error to the user.
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

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
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

// Reported reports whether err has already been written by a formatter, so
// the caller should not print it again.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// CLIResponse is the JSON document written to stdout with --format json.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // run report
	Error  *CLIError   `json:"error,omitempty"` // error details
	RunID  string      `json:"run_id,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"` // "E_VERIFY", "E_CONFIG", ...
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// runResponse wraps a run report. A failed run still carries the report in
// Data alongside the error.
func runResponse(data interface{}, failed bool, code, message string) CLIResponse {
	response := CLIResponse{Status: "ok", Data: data}
	if failed {
		response.Status = "error"
		response.Error = &CLIError{Code: code, Message: message}
	}
	return response
}

// OutputFormatter writes results and errors in the selected format. Stdout
// (Writer) carries results; diagnostics go to ErrWriter.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // defaults to Writer
	Verbose   bool
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == "json"
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Respond writes response as indented JSON to Writer.
func (f *OutputFormatter) Respond(response CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// Error reports a command error. JSON mode writes an error response to
// Writer. Text mode writes "Error [code]: message" to ErrWriter, followed by
// the details when verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.Respond(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	w := f.errWriter()
	if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	if f.Verbose && details != nil {
		_, err := fmt.Fprintf(w, "  %v\n", details)
		return err
	}
	return nil
}

// Fail reports an environment error through Error and returns it as a
// reported ExitError with ExitCommandError.
func (f *OutputFormatter) Fail(code, message string, err error) error {
	_ = f.Error(code, message, err.Error())
	e := WrapExitError(ExitCommandError, message, err)
	e.Reported = true
	return e
}

// VerboseLog writes a diagnostic line to ErrWriter when verbose.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}
