// Package errors provides smart error constructors that auto-attach suggestions.
// These constructors combine error creation with suggestion lookup so callers
// get user-facing errors with remediation guidance in one call.
package errors

import "fmt"

// suggestions maps error codes to remediation steps attached at construction.
var suggestions = map[string][]string{
	ErrConfigParseFailed: {
		"Check the YAML syntax of the config file",
		"Run with -init to regenerate a default config",
	},
	ErrConfigInvalid: {
		"Compare the config against the defaults produced by -init",
	},
	ErrInputNotFound: {
		"Check the input path; it is resolved relative to the working directory",
	},
	ErrInputUnsupportedFormat: {
		"Use a .xlsx or .csv input file",
	},
	ErrInputNoRows: {
		"The input sheet needs a header row plus at least one data row",
	},
	ErrAssetFetchFailed: {
		"Logo downloads are single-attempt; the report is generated without a logo",
	},
}

// AttachSuggestions adds registered suggestions for the error's code.
// Errors with no registered suggestions pass through unchanged.
func AttachSuggestions(err *PipelineError) *PipelineError {
	for _, s := range suggestions[err.Code] {
		err = err.WithSuggestion(s)
	}
	return err
}

// Config creates a configuration error with auto-attached suggestions.
// The error code should be one of the ErrConfig* constants.
func Config(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryConfig, message))
}

// Configf creates a configuration error with a formatted message.
func Configf(code, format string, args ...interface{}) *PipelineError {
	return Config(code, fmt.Sprintf(format, args...))
}

// ConfigWrap wraps an error as a configuration error.
func ConfigWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryConfig, message))
}

// Input creates an input spreadsheet error with auto-attached suggestions.
// The error code should be one of the ErrInput* constants.
func Input(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryInput, message))
}

// Inputf creates an input error with a formatted message.
func Inputf(code, format string, args ...interface{}) *PipelineError {
	return Input(code, fmt.Sprintf(format, args...))
}

// InputWrap wraps an error as an input error.
func InputWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryInput, message))
}

// Row creates a per-row processing error.
func Row(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryRow, message))
}

// RowWrap wraps an error as a per-row processing error.
func RowWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryRow, message))
}

// Asset creates an asset resolution error.
// The error code should be one of the ErrAsset* constants.
func Asset(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryAsset, message))
}

// AssetWrap wraps an error as an asset resolution error.
func AssetWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryAsset, message))
}

// Render creates a chart rendering error.
func Render(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryRender, message))
}

// RenderWrap wraps an error as a chart rendering error.
func RenderWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryRender, message))
}

// Report creates a PDF assembly error.
func Report(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryReport, message))
}

// ReportWrap wraps an error as a PDF assembly error.
func ReportWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryReport, message))
}

// Output creates an output spreadsheet error.
func Output(code, message string) *PipelineError {
	return AttachSuggestions(New(code, CategoryOutput, message))
}

// OutputWrap wraps an error as an output spreadsheet error.
func OutputWrap(cause error, code, message string) *PipelineError {
	return AttachSuggestions(Wrap(cause, code, CategoryOutput, message))
}
