package relptr

import "github.com/pkg/errors"

// OffsetOutOfRangeError is the error returned from Set or other methods when the byte distance
// between a pointer and its target does not fit the pointer's offset type
var OffsetOutOfRangeError error = errors.New("target distance does not fit the pointer's offset type")

// SelfTargetError is the error returned from Set or other methods when the target address equals
// the pointer's own storage address. A zero distance is reserved as the null sentinel
var SelfTargetError error = errors.New("pointer cannot target its own storage address")
