// Package trace records span events for the fetch → lex → build → query
// pipeline so slow or stuck documents can be diagnosed.
//
// Enable it from the command line:
//
//	ewb parse --trace=- --trace-level=detail page.html
//
// Tracers:
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events in memory
//
// Levels control which scopes are emitted: phase keeps driver and pass
// boundaries, detail adds per-document spans, debug emits everything.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex+build", 0)
//	defer span.End("")
package trace
