// Package httpadapter connects the validate package to a host web application built on chi.
//
// It does not run a server. A host mounts the guards on its issue and show routes:
//
//	r.Use(middleware.RequestID)
//	r.Use(httpadapter.RequestLogger(logger))
//	r.With(httpadapter.IssueGuard(v, "0.3", mandatory)).Get("/pid/getpid", handleGetPID)
//
// A guarded handler only runs for valid requests and can read the recorded state with StateFromContext.
package httpadapter
