// Package exporter renders analysis snapshots into report files.
// Two formats are supported: a multi-sheet Excel workbook for collectors who
// live in spreadsheets, and a flat CSV for anything downstream that wants to
// ingest the numbers. Exporting is presentation only; the engine's results
// are never altered on the way out.
package exporter
