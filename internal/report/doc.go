// Package report renders the reference tables as a PDF document for download
// and as CSV files for the offline export.
package report
