package profile

import "errors"

// ErrUnidentifiableUser is returned when a payload carries neither a non-empty
// Engage profile identifier nor a non-empty Capture uuid.
var ErrUnidentifiableUser = errors.New("profile: cannot identify user")
