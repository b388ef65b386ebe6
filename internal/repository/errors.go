package repository

import "errors"

var (
	ErrNavigationFailed = errors.New("navigation failed")
	ErrElementNotFound  = errors.New("element not found")
	ErrAttributeMissing = errors.New("attribute missing")
)
