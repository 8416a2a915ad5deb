// Package core implements the data cleaning pipeline: ingest, profile,
// clean, and export, plus the session store and limiter that serve it.
//
// # Error Codes Reference
//
// Errors shown to users carry a short code they can quote when asking for
// help. Codes are grouped by category.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Remove unused rows or columns and upload again
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid CSV: File could not be read as CSV
//	          Action: Check that every row has no more fields than the header
//	          Patterns: "invalid csv"
//
//	FILE003 - Encoding error: File contains invalid characters
//	          Action: Save the file as UTF-8 and upload again
//	          Patterns: "encoding error"
//
//	FILE004 - No file: No file was selected
//	          Action: Choose a CSV or Excel file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file has no data
//	          Action: Upload a file with a header row
//	          Patterns: "empty file"
//
//	FILE006 - Unsupported type: Only .csv and .xlsx files are accepted
//	          Action: Export the data as CSV or Excel and upload again
//	          Patterns: "unsupported file type"
//
//	FILE007 - Invalid workbook: File could not be read as an Excel workbook
//	          Action: Open and re-save the workbook as .xlsx
//	          Patterns: "invalid xlsx"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - No upload: There is no file for this session
//	         Action: Upload a file to start, your previous one may have expired
//	         Patterns: "no upload"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Invalid selection: An option was not recognised
//	         Action: Reload the page and choose again
//	         Patterns: "invalid selection"
//
// # Chart Errors (VIS001-VIS099)
//
//	VIS001 - Nothing to plot: The column has no values to plot
//	         Action: Pick another column or enable Fill Missing Values
//	         Patterns: "column has no values"
//
//	VIS002 - Not numeric: Only numeric columns can be charted
//	         Action: Pick a numeric column
//	         Patterns: "column is not numeric", "unknown column"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # System Errors (SYS001-SYS099)
//
//	SYS001 - Busy: Too many files are being processed
//	         Action: Please wait a moment and try again
//	         Patterns: "too many pipeline runs"
//
//	SYS002 - Cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	SYS003 - Timeout: Request timed out
//	         Action: Try a smaller file or try again later
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones. For
// ERR000 the original error is only in the server log, keyed by request id.
package core

import "strings"

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps lower-case error substrings to user messages. Keep the
// package documentation in sync when adding entries.
var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused rows or columns and upload again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused rows or columns and upload again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File could not be read as CSV",
			Action:  "Check that every row has no more fields than the header",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as UTF-8 and upload again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no data",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Unsupported file type. Please upload a CSV or Excel file.",
			Action:  "Export the data as CSV or Excel and upload again",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "File could not be read as an Excel workbook",
			Action:  "Open and re-save the workbook as .xlsx",
			Code:    "FILE007",
		},
	},

	// Session and selection errors
	{
		pattern: "no upload",
		msg: UserMessage{
			Message: "There is no file for this session",
			Action:  "Upload a file to start, your previous one may have expired",
			Code:    "SES001",
		},
	},
	{
		pattern: "invalid selection",
		msg: UserMessage{
			Message: "An option was not recognised",
			Action:  "Reload the page and choose again",
			Code:    "SEL001",
		},
	},

	// Chart errors
	{
		pattern: "column has no values",
		msg: UserMessage{
			Message: "The column has no values to plot",
			Action:  "Pick another column or enable Fill Missing Values",
			Code:    "VIS001",
		},
	},
	{
		pattern: "column is not numeric",
		msg: UserMessage{
			Message: "Only numeric columns can be charted",
			Action:  "Pick a numeric column",
			Code:    "VIS002",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "Only numeric columns can be charted",
			Action:  "Pick a numeric column",
			Code:    "VIS002",
		},
	},

	// Throttling
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many pipeline runs",
		msg: UserMessage{
			Message: "Too many files are being processed",
			Action:  "Please wait a moment and try again",
			Code:    "SYS001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "SYS002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "SYS003",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000; nil maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}
