package patch

import "errors"

var (
	ErrNotFetched = errors.New("recipe sources not fetched")
	ErrNoWorkdir  = errors.New("no workdir")
)
