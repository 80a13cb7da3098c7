package isolation

import "errors"

var (
	ErrUnknownImage = errors.New("unknown image")
	ErrMachine      = errors.New("machine provisioning failed")
	ErrContainer    = errors.New("container provisioning failed")
	ErrExec         = errors.New("container exec failed")
)
