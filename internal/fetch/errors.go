package fetch

import "errors"

var (
	ErrUnsupportedMethod = errors.New("unsupported source method")
	ErrUnsafePath        = errors.New("archive entry escapes destination")
)
