// Package errors provides the error definitions shared across splash.
//
// The splash sequence itself cannot fail: a missing background degrades to a
// fallback image and a missing face degrades to the default one. Errors here
// describe the ambient edges instead: invalid timing, asset loading (which
// callers log and swallow), and CLI plumbing.
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrAssetNotFound) { ... }
//
//	var assetErr *errors.AssetError
//	if errors.As(err, &assetErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sequence sentinel errors
var (
	// ErrInvalidTiming indicates delays that cannot produce a forward-only
	// sequence (non-positive, or black screen not after zoom).
	ErrInvalidTiming = New("invalid sequence timing")
)

// Asset sentinel errors
var (
	// ErrAssetNotFound indicates that an asset file does not exist.
	ErrAssetNotFound = New("asset not found")
	// ErrAssetEmpty indicates that an asset exists but holds no frames.
	ErrAssetEmpty = New("asset is empty")
	// ErrFetchFailed indicates that a remote asset could not be fetched.
	ErrFetchFailed = New("asset fetch failed")
)

// AssetError describes a failure loading a background asset.
//
// Example:
//
//	err := errors.NewAssetError("load video", "welcome.frames", errors.ErrAssetNotFound)
//	fmt.Println(err) // "asset error [load video welcome.frames]: asset not found"
type AssetError struct {
	Op     string
	Source string
	Err    error
}

// NewAssetError creates a new AssetError.
func NewAssetError(op, source string, err error) *AssetError {
	return &AssetError{Op: op, Source: source, Err: err}
}

// Error returns the formatted error message.
func (e *AssetError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("asset error [%s %s]", e.Op, e.Source)
	}
	return fmt.Sprintf("asset error [%s %s]: %v", e.Op, e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *AssetError) Unwrap() error {
	return e.Err
}

// TimingError reports which delay pair violated the sequence ordering.
type TimingError struct {
	Field  string
	Reason string
}

// NewTimingError creates a TimingError for the given field.
func NewTimingError(field, reason string) *TimingError {
	return &TimingError{Field: field, Reason: reason}
}

// Error returns the formatted error message.
func (e *TimingError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidTiming, e.Field, e.Reason)
}

// Is lets errors.Is match TimingError against ErrInvalidTiming.
func (e *TimingError) Is(target error) bool {
	return target == ErrInvalidTiming
}

// IsAssetError reports whether err stems from asset loading.
func IsAssetError(err error) bool {
	var assetErr *AssetError
	return As(err, &assetErr)
}
