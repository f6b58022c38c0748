// Package tbgate bridges synchronous gateway-style web applications onto a
// standard asynchronous HTTP front-end, one named backend instance per path.
//
// # Overview
//
// A backend instance is an opaque callable speaking the classic synchronous
// gateway protocol: it receives a request environment, reports a status line
// and ordered headers through a start-response callback, and returns its body
// as a single buffer or a finite sequence of chunks. tbgate translates an
// inbound request into that environment, invokes the callable, captures the
// response triple and replays it faithfully onto the live connection:
//
//	reg := tbgate.NewRegistryMap()
//	reg.Add("1", tbgate.InstanceOf(myApp))
//
//	var inv tbgate.Invoker
//	env, err := tbgate.BuildEnviron(r)
//	// ...
//	app, err := tbgate.Resolve(reg, "1")
//	// ...
//	res, err := inv.Invoke(app, env)
//	// ...
//	res.Replay(w)
//
// The pieces involved:
//
//   - [BuildEnviron] builds the canonical [Environ] from an *http.Request,
//     percent-decoding the path component exactly once.
//   - [Invoker.Invoke] calls an [App] and captures its [Response]. Calls are
//     serialized because the wrapped applications assume the single-threaded
//     loop they were written for.
//   - [Resolve] looks a name token up in the externally owned [Registry].
//   - [Response.Replay] writes the captured status, headers and body back.
//
// # Buffered Response Writer
//
// Handlers write to a [ResponseWriter] that buffers output in memory until
// flushed. This keeps responses fully valid or fully an error: when a handler
// fails mid-write the buffer is reset and replaced, never partially flushed.
//
// Key methods:
//   - [ResponseWriter.Reset] clears the buffer and headers for a fresh response
//   - [ResponseWriter.FlushBuffer] writes buffered content to the underlying writer
//   - [ResponseWriter.Free] returns the buffer to a pool (called automatically)
//
// # Handlers and Error Handling
//
// tbgate handlers return errors instead of writing error responses inline:
//
//	func(w tbgate.ResponseWriter, r *http.Request) error
//
// [ToStd] converts a handler into a standard http.Handler and is the single
// place where errors become wire-level statuses: an [*Error] created with
// [NewError] renders its [Code], anything else is logged and rendered as a
// plain 500. The buffer is reset first, so no partial body escapes.
//
// # Routing
//
// [ServeMux] wraps the standard library multiplexer with buffered handlers,
// middleware and named routes:
//
//	mux := tbgate.NewServeMux()
//	mux.HandleFunc("GET /tensorboard_pro/{name}/{path...}", handler, "instance")
//	loc, _ := mux.Reverse("instance", "1", "data")
//
// [ServeMux.Mount] and [JoinPath] support hanging the route set under a
// configurable base path, with the prefix stripped from the effective path.
//
// The front subpackage assembles these parts into a complete front-end
// server: configuration, logging, tracing, authentication, the cross-origin
// policy for POSTing backends, and the full route set.
package tbgate
