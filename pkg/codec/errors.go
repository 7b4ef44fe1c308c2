package codec

import (
	"errors"
	"fmt"
)

// Codec errors.
var (
	ErrNotStruct  = errors.New("value is not a struct")
	ErrNilPointer = errors.New("nil pointer")
	ErrNotString  = errors.New("temporal member is not a string")
)

// MemberError reports a member that could not be encoded or decoded.
type MemberError struct {
	Member string
	Err    error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("codec: member %q: %v", e.Member, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}
