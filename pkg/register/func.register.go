package register

import "sync"

// Package-level registry that lets store implementations hook themselves
// into a provider from their init funcs without import cycles. Handlers are
// resolved once during provider setup, after that the registry is idle.

type Handler[T any] func(T)

var (
	mu       sync.Mutex
	handlers = map[any][]any{}
)

func RegisterFunc[T any](key any, handler Handler[T]) {
	mu.Lock()
	defer mu.Unlock()
	handlers[key] = append(handlers[key], handler)
}

func ResolveFuncHandlers[T any](key any) []Handler[T] {
	mu.Lock()
	defer mu.Unlock()

	result := make([]Handler[T], 0, len(handlers[key]))
	for _, v := range handlers[key] {
		if h, ok := v.(Handler[T]); ok {
			result = append(result, h)
		}
	}
	return result
}
