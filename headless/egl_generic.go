//go:build !linux && !js

package headless

import (
	"fmt"

	"github.com/richinsley/goflower/graphics"
	"go.uber.org/zap"
)

func NewHeadless(width, height int, log *zap.Logger) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
