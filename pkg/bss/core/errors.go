package core

import "errors"

// ErrLivelockDetected is returned by a process when a RecvB operation
// polls past its configured limit without finding its expected message —
// the script is demanding a message that (within the observed wait
// window) never arrives.
var ErrLivelockDetected = errors.New("Inconsistent Input Detected")
