// Package goroutine launches background goroutines that survive panics.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/servly-inc/servly/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine. A panic inside fn is logged under the
// given name together with the stack instead of taking the process down.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverTo(log, name)
		fn()
	}()
}

func recoverTo(log logger.Interface, name string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("background goroutine panicked",
		"name", name,
		"panic", fmt.Sprintf("%v", r),
		"stack", string(debug.Stack()),
	)
}
