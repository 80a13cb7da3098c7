package integrity

import "errors"

var (
	ErrIntegrity = errors.New("could not verify data integrity")
)
