package mdrtf

import "errors"

// ErrBinaryInput reports input that appears to be binary.
var ErrBinaryInput = errors.New("binary input detected")

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns ErrBinaryInput if src contains NUL bytes or, for
// samples of at least 64 bytes, 2% or more control characters. Invalid UTF-8
// is accepted: the renderer escapes stray bytes individually.
func ValidateInput(src []byte) error {
	var total, control int
	for _, b := range src {
		total++
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 {
		return true
	}
	return b == 0x7F
}
