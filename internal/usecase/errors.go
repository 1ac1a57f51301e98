package usecase

import "errors"

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrFetchFailed   = errors.New("fetch failed")
	ErrSaveFailed    = errors.New("save failed")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
)
