package ingest

import "errors"

// Ingestion errors surface before the normalization pipeline runs;
// none of them touches the accumulated dataset.
var (
	ErrInvalidWorkbook = errors.New("file is not a readable xlsx workbook")
	ErrNoSheets        = errors.New("workbook has no sheets")
	ErrEmptySheet      = errors.New("workbook sheet has no rows")
	ErrMissingColumn   = errors.New("required column missing")
)
