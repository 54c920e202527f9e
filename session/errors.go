package session

import "errors"

var (
	IncompleteSessionErr = errors.New("incomplete session")
)
