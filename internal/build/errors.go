package build

import "errors"

var (
	ErrStepFailed = errors.New("build step failed")
	ErrNotFetched = errors.New("recipe sources not fetched")
)
