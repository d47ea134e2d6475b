// Package errors provides error code constants for the report pipeline.
// Error codes are organized by category for consistent handling and lookup.
package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------
// Use these codes for errors related to config file loading, parsing,
// and validation.

const (
	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	// Usually a YAML syntax error or invalid structure.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid.
	// Field values don't meet validation requirements.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigReadFailed indicates the config file could not be read.
	ErrConfigReadFailed = "CONFIG_READ_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Input Spreadsheet Error Codes
// -----------------------------------------------------------------------------
// Input errors are fatal: without a readable lead sheet there is no batch.

const (
	// ErrInputNotFound indicates the input spreadsheet does not exist.
	ErrInputNotFound = "INPUT_NOT_FOUND"

	// ErrInputReadFailed indicates the input spreadsheet could not be parsed.
	ErrInputReadFailed = "INPUT_READ_FAILED"

	// ErrInputNoRows indicates the input spreadsheet has no data rows.
	ErrInputNoRows = "INPUT_NO_ROWS"

	// ErrInputUnsupportedFormat indicates the file extension is not handled.
	// Supported: .xlsx and .csv.
	ErrInputUnsupportedFormat = "INPUT_UNSUPPORTED_FORMAT"
)

// -----------------------------------------------------------------------------
// Row Processing Error Codes
// -----------------------------------------------------------------------------
// Row errors affect a single lead. The batch records the failure and
// continues with the next row.

const (
	// ErrRowFailed indicates a row's report could not be produced.
	ErrRowFailed = "ROW_FAILED"
)

// -----------------------------------------------------------------------------
// Asset Error Codes
// -----------------------------------------------------------------------------
// Asset errors degrade a row (the report is built without the asset).

const (
	// ErrAssetBadURL indicates no candidate value was a usable http(s) URL.
	ErrAssetBadURL = "ASSET_BAD_URL"

	// ErrAssetFetchFailed indicates the single best-effort download failed.
	// Covers network errors, non-2xx responses, and timeouts. No retries.
	ErrAssetFetchFailed = "ASSET_FETCH_FAILED"
)

// -----------------------------------------------------------------------------
// Rendering Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrChartRenderFailed indicates one chart image could not be produced.
	// The corresponding slot is omitted from the report layout.
	ErrChartRenderFailed = "CHART_RENDER_FAILED"

	// ErrReportBuildFailed indicates the PDF document could not be written.
	ErrReportBuildFailed = "REPORT_BUILD_FAILED"
)

// -----------------------------------------------------------------------------
// Output Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrOutputWriteFailed indicates the result spreadsheet could not be written.
	ErrOutputWriteFailed = "OUTPUT_WRITE_FAILED"
)
