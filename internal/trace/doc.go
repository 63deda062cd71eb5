// Package trace records what the front end does with a file.
//
// The tracer follows a file from the driver through its phases
// (preprocess, assemble, transpile) down to individual units, which makes it
// possible to see which lines went through the grammar, which needed the
// fallback and which stayed unparsed.
//
// # Usage
//
//	talfront parse --trace=- --trace-level=detail legacy.tal
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps after a failed run
//   - LevelPhase: driver and phase boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including every unit
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "assemble", parentID)
//	defer span.End("")
package trace
