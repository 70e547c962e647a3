package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrNotABillDocument     = errors.New("text does not look like a bill")
	ErrMissingRequiredField = errors.New("no amount could be extracted")
	ErrUnparsableAmount     = errors.New("amount value could not be parsed")
	ErrUnparsableDate       = errors.New("date value could not be parsed")
	ErrNoMatchingStrategy   = errors.New("all extraction strategies failed")
	ErrEmptyInput           = errors.New("input text is empty")
	ErrArchiveFailed        = errors.New("source text archive to storage failed")
)
