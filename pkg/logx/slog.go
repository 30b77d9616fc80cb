package logx

import (
	"fmt"
	"log/slog"

	"github.com/lmittmann/tint"
)

// Error wraps an error as a tint-colored slog attribute.
var Error = tint.Err //nolint:gochecknoglobals

// Stringer logs any fmt.Stringer under the given key.
func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}
