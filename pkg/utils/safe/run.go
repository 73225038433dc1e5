package safe

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/utils/logging"
)

// Run executes handler on the calling goroutine with panic recovery.
//
// Behavior:
//   - A panic is logged with its stack and returned as an error
//   - An error returned by handler is logged and returned unchanged
//
// The watch loop relies on Run staying synchronous so that only one release
// transition is in flight at a time.
func Run(ctx context.Context, name string, handler func(ctx context.Context) error) (err error) {
	logger := logging.From(ctx)

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger.Error("panic in handler",
				"handler", name,
				"recover", r,
				"stack", string(stack))
			err = goerr.New("handler panicked",
				goerr.V("handler", name),
				goerr.V("recover", fmt.Sprint(r)))
		}
	}()

	if err := handler(ctx); err != nil {
		logger.Error("error in handler", "handler", name, "error", err)
		return err
	}
	return nil
}
