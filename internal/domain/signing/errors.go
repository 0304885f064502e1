package signing

import "errors"

var (
	ErrEmptyBatch    = errors.New("no files to sign")
	ErrBatchTooLarge = errors.New("too many files in one batch")
)
