// Package core holds the data cleaning pipeline, independent of any
// transport. The web layer and tests drive it the same way.
//
// # Pipeline
//
// Every interaction runs the whole pipeline again from the stored upload:
//
//  1. [Ingest] parses the raw bytes into a [Dataset], choosing the CSV or
//     XLSX reader from the file extension.
//  2. [ProfileDataset] counts rows, columns, duplicate rows and missing
//     cells.
//  3. [Clean] optionally drops duplicate rows and then optionally fills
//     missing cells with one [FillStrategy].
//  4. The [Result] names the numeric columns that can be charted and which
//     one the current [Selection] resolves to.
//  5. [WriteCSV] serialises the cleaned table for download.
//
// [Service.Run] ties these together for a session: it looks the upload up
// in the [SessionStore], takes a slot from the [Limiter] and records
// [Metrics].
//
// # Errors
//
// Parse failures are returned as wrapped sentinel errors such as
// [ErrInvalidCSV] and [ErrUnsupportedFormat]. [MapError] turns any of them
// into a [UserMessage] with a support code.
package core
