package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "unsupported format", err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, "notes.txt"), wantCode: "FILE006"},
		{name: "empty file", err: ErrEmptyFile, wantCode: "FILE005"},
		{name: "encoding", err: fmt.Errorf("%w: file is not valid UTF-8", ErrEncoding), wantCode: "FILE003"},
		{name: "invalid csv", err: fmt.Errorf("%w: expected 2 fields in line 3, saw 4", ErrInvalidCSV), wantCode: "FILE002"},
		{name: "invalid workbook", err: fmt.Errorf("%w: zip: not a valid zip file", ErrInvalidWorkbook), wantCode: "FILE007"},
		{name: "max bytes reader", err: errors.New("http: request body too large"), wantCode: "FILE001"},
		{name: "no upload", err: ErrNoUpload, wantCode: "SES001"},
		{name: "invalid selection", err: fmt.Errorf("%w: ChartKind=pie", ErrInvalidSelection), wantCode: "SEL001"},
		{name: "nothing to plot", err: errors.New("render chart: column has no values"), wantCode: "VIS001"},
		{name: "not numeric", err: errors.New("column is not numeric"), wantCode: "VIS002"},
		{name: "busy", err: ErrBusy, wantCode: "SYS001"},
		{name: "cancelled", err: fmt.Errorf("acquire: %w", context.Canceled), wantCode: "SYS002"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "SYS003"},
		{name: "rate limit", err: errors.New("rate limit exceeded"), wantCode: "RATE001"},
		{name: "case insensitive", err: errors.New("INVALID CSV data"), wantCode: "FILE002"},
		{name: "unknown error returns default", err: errors.New("some random internal error"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() returned an empty message")
			}
		})
	}
}
