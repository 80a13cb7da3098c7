package shell

import "errors"

var (
	ErrEmptyCommand = errors.New("empty command")
)
