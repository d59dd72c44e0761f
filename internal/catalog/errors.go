package catalog

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks fatal setup problems: bad service selection, bad
// test options, unconfigured services. Nothing is probed once one occurs.
var ErrConfiguration = errors.New("configuration error")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
