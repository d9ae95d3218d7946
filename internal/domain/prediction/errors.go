package prediction

import "errors"

// ErrInvalidPayload is returned when a stored prediction payload does not
// match the entry schema.
var ErrInvalidPayload = errors.New("invalid prediction payload")
