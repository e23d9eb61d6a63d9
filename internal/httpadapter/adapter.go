package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/information-sharing-networks/pid-validate/internal/logger"
	"github.com/information-sharing-networks/pid-validate/internal/redirect"
	"github.com/information-sharing-networks/pid-validate/internal/validate"
)

type contextKey string

const stateKey contextKey = "request_state"

// ArgsFromRequest returns the first value of each query and form parameter
func ArgsFromRequest(r *http.Request) (validate.Args, error) {
	if err := r.ParseForm(); err != nil {
		return validate.Args{}, err
	}
	return validate.ArgsFromValues(r.Form), nil
}

// StateFromRequest builds the initial request state.
//
// The route is the chi route pattern when one has been matched (the raw path otherwise) and the
// request id is the one set by middleware.RequestID, or a new uuid when that middleware is not in use.
func StateFromRequest(r *http.Request, version string) validate.RequestState {
	route := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			route = pattern
		}
	}

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	return validate.RequestState{
		Route:     route,
		Version:   version,
		RequestID: requestID,
	}
}

// WithState returns a copy of ctx carrying state
func WithState(ctx context.Context, state validate.RequestState) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

// StateFromContext returns the state recorded by a guard
func StateFromContext(ctx context.Context) (validate.RequestState, bool) {
	state, ok := ctx.Value(stateKey).(validate.RequestState)
	return state, ok
}

// Respond writes the response for a non-valid outcome and reports whether it wrote one.
//
//   - LocalError: plain text "Error <code>: <message>" with the error's status
//   - Redirect: 302 to the return URL with error and error_str added
//   - Valid: nothing is written
func Respond(w http.ResponseWriter, r *http.Request, outcome validate.Outcome, messages redirect.MessageFunc) bool {
	switch o := outcome.(type) {
	case validate.LocalError:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(o.Status)
		if _, err := w.Write([]byte(o.Body() + "\n")); err != nil {
			logger.ContextRequestLogger(r.Context()).Error("Failed to write response",
				slog.String("error", err.Error()),
			)
		}
		return true

	case validate.Redirect:
		target, err := redirect.BuildURL(o, messages)
		if err != nil {
			logger.ContextRequestLogger(r.Context()).Error("Failed to build redirect URL",
				slog.String("error", err.Error()),
				slog.Int("error_code", int(o.Code)),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return true
		}
		http.Redirect(w, r, target, http.StatusFound)
		return true

	default:
		return false
	}
}

// IssueGuard validates issue requests (/pid/getpid, /mdl/getmdl) before they reach next.
// Invalid requests are answered with Respond; valid ones carry the recorded state in their context.
func IssueGuard(v *validate.Validator, version string, mandatory []string) func(http.Handler) http.Handler {
	return guard(v, version, mandatory, v.ValidateIssue)
}

// ShowGuard validates show requests (/pid/show) before they reach next.
//
// When an earlier step stored a state in the request context (WithState) it is used as the starting state.
func ShowGuard(v *validate.Validator, version string, mandatory []string) func(http.Handler) http.Handler {
	return guard(v, version, mandatory, v.ValidateShow)
}

type validateFunc func(context.Context, validate.Args, []string, validate.RequestState) (validate.Outcome, validate.RequestState)

func guard(v *validate.Validator, version string, mandatory []string, fn validateFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			args, err := ArgsFromRequest(r)
			if err != nil {
				logger.ContextRequestLogger(r.Context()).Warn("Failed to parse request parameters",
					slog.String("error", err.Error()),
				)
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			state, ok := StateFromContext(r.Context())
			if !ok {
				state = StateFromRequest(r, version)
			}

			outcome, state := fn(r.Context(), args, mandatory, state)
			if Respond(w, r, outcome, v.Policy().Message) {
				return
			}

			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), state)))
		})
	}
}
