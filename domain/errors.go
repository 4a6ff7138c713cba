// ABOUTME: Domain-level sentinel errors for the fan-pulse service
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Tweet-related errors
var (
	// ErrTweetNotFound indicates the requested tweet does not exist
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrTweetTextEmpty indicates the tweet exists but has no text
	ErrTweetTextEmpty = errors.New("tweet text is empty")
)

// Classifier errors
var (
	// ErrClassifierUnavailable indicates the hosted model API cannot be reached
	ErrClassifierUnavailable = errors.New("classifier API unavailable")

	// ErrClassifierBadResponse indicates the model returned a malformed payload. Non-retryable.
	ErrClassifierBadResponse = errors.New("classifier API returned malformed response")

	// ErrUnknownLabel indicates the model returned a label outside the expected set. Non-retryable.
	ErrUnknownLabel = errors.New("unknown sentiment label")
)

// Ingest errors
var (
	// ErrMissingColumns indicates the CSV header lacks the required columns
	ErrMissingColumns = errors.New("dataset is missing required columns")

	// ErrEmptyDataset indicates the CSV contained no usable rows
	ErrEmptyDataset = errors.New("dataset contained no usable rows")
)
