package spray

import "errors"

var (
	// ErrInvalidInput reports an image or mask that cannot be analyzed,
	// such as a nil image or one with zero width or height.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration reports an unusable parameter, such as a
	// section count below 1 or wider than the image.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
