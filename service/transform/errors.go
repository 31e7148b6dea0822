package transform

import "errors"

// Sentinel errors for the transform pipeline.
var (
	ErrEmptyInput = errors.New("no HTML content provided")
	ErrProcessing = errors.New("HTML processing failed")
)
