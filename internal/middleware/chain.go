package middleware

import "net/http"

// Middleware wraps a handler with one request-processing stage.
type Middleware func(http.Handler) http.Handler

// Stage is one named position in the request pipeline.
// Disabled stages keep their position in the list but are not applied.
type Stage struct {
	Name       string
	Enabled    bool
	Middleware Middleware
}

// Chain applies multiple middleware in order (first to last)
// The middleware are executed in the order they are provided
//
// Example:
//
//	handler := Chain(mux,
//	    JSONBody(limit),  // Executes first
//	    Cookies,          // Executes second
//	)
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	// Apply middleware in reverse order so they execute in the order provided
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Build chains the enabled stages in list order in front of dispatch.
func Build(dispatch http.Handler, stages []Stage) http.Handler {
	middlewares := make([]Middleware, 0, len(stages))
	for _, s := range stages {
		if s.Enabled {
			middlewares = append(middlewares, s.Middleware)
		}
	}
	return Chain(dispatch, middlewares...)
}

// Names lists the enabled stages in execution order.
func Names(stages []Stage) []string {
	var names []string
	for _, s := range stages {
		if s.Enabled {
			names = append(names, s.Name)
		}
	}
	return names
}
