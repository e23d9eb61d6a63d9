package validate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/information-sharing-networks/pid-validate/internal/crypto"
	"github.com/information-sharing-networks/pid-validate/internal/logger"
	"github.com/information-sharing-networks/pid-validate/internal/policy"
)

// parameter names
const (
	ParamDevicePublicKey = "device_publickey"
	ParamReturnURL       = "returnURL"
	ParamCountry         = "country"
	ParamCertificate     = "certificate"
	ParamError           = "error"
	ParamErrorStr        = "error_str"
)

// variant labels used in logs and metrics
const (
	VariantIssue = "issue"
	VariantShow  = "show"
)

// Recorder receives validation results, e.g. metrics.Recorder
type Recorder interface {
	RecordOutcome(variant, outcome string, code int)
	RecordCertCheck(result string)
}

// Validator runs the request parameter checks against a policy.
// It holds no per-request state and is safe for concurrent use.
type Validator struct {
	policy       *policy.Policy
	urlValidator *validator.Validate
	recorder     Recorder
	maxParamSize int64
}

// Option configures a Validator
type Option func(*Validator)

// WithRecorder sets the recorder that is told about every outcome
func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		v.recorder = r
	}
}

// WithMaxParameterSize limits the encoded size of the certificate and device_publickey parameters
func WithMaxParameterSize(n int64) Option {
	return func(v *Validator) {
		v.maxParamSize = n
	}
}

// NewValidator returns a Validator using p. A nil policy means policy.Default().
func NewValidator(p *policy.Policy, opts ...Option) *Validator {
	if p == nil {
		p = policy.Default()
	}
	v := &Validator{
		policy:       p,
		urlValidator: validator.New(),
		maxParamSize: crypto.MaxParameterSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Policy returns the policy the validator was built with
func (v *Validator) Policy() *policy.Policy {
	return v.policy
}

// ValidateIssue checks the parameters of an issue request (/pid/getpid, /mdl/getmdl).
//
// The checks run in a fixed order and stop at the first failure:
//
//  1. device_publickey missing: LocalError 15
//  2. returnURL missing: LocalError 11
//  3. returnURL not a well formed URL and without a scheme: LocalError 14
//  4. country supplied but not supported: Redirect 102
//  5. a mandatory parameter missing: Redirect 101
//  6. certificate missing or not base64url: Redirect 103
//  7. certificate unparseable, or algorithm/curve not allowed: Redirect 104
//  8. device_publickey not a base64url encoded PEM public key: LocalError 16
//
// device_publickey and returnURL are recorded in the returned state as soon as they are seen.
func (v *Validator) ValidateIssue(ctx context.Context, args Args, mandatory []string, state RequestState) (Outcome, RequestState) {
	outcome := v.validateIssue(args, mandatory, &state)
	v.report(ctx, VariantIssue, outcome, state)
	return outcome, state
}

func (v *Validator) validateIssue(args Args, mandatory []string, state *RequestState) Outcome {
	ok, _ := CheckMandatory(args, mandatory)

	devicePublicKey, present := args.Get(ParamDevicePublicKey)
	if !present {
		return v.localError(ErrCodeNoDevicePublicKey, StatusIntegrityError)
	}
	state.DevicePublicKey = devicePublicKey

	returnURL, present := args.Get(ParamReturnURL)
	if !present {
		return v.localError(ErrCodeNoReturnURL, StatusIntegrityError)
	}
	state.ReturnURL = returnURL

	if !v.isWellFormedURL(returnURL) && !hasScheme(returnURL) {
		return v.localError(ErrCodeMalformedReturnURL, StatusIntegrityError)
	}

	if country, present := args.Get(ParamCountry); present && !v.policy.SupportsCountry(country) {
		return v.redirect(*state, ErrCodeUnsupportedCountry)
	}

	if !ok {
		return v.redirect(*state, ErrCodeMissingFields)
	}

	encodedCert, _ := args.Get(ParamCertificate)
	certBytes, err := crypto.DecodeBase64URL(encodedCert, v.maxParamSize)
	if err != nil {
		return v.redirect(*state, ErrCodeCertificateEncoding,
			Field{Name: ParamErrorStr, Value: "Certificate not correctly encoded - " + err.Error()})
	}

	result, err := crypto.ValidateCertAlgo(certBytes, v.policy.AllowList)
	if err != nil {
		v.recordCertCheck("unparseable")
		return v.redirect(*state, ErrCodeCertificateAlgorithm,
			Field{Name: ParamErrorStr, Value: "Certificate could not be parsed - " + err.Error()})
	}
	if !result.OK {
		v.recordCertCheck("rejected")
		return v.redirect(*state, ErrCodeCertificateAlgorithm,
			Field{Name: ParamErrorStr, Value: fmt.Sprintf("Certificate algorithm (%s) or curve (%s) not supported.", result.Algorithm, result.Curve)})
	}
	v.recordCertCheck("accepted")

	keyBytes, err := crypto.DecodeBase64URL(devicePublicKey, v.maxParamSize)
	if err != nil || !crypto.IsValidPublicKey(keyBytes) {
		return v.localError(ErrCodeInvalidDevicePublicKey, StatusIntegrityError)
	}

	return Valid{}
}

// ValidateShow checks the parameters of a show request (/pid/show).
//
//  1. a mandatory parameter or the error parameter missing: LocalError 101 (206)
//  2. error not an integer: LocalError 101 (206)
//  3. error not zero: LocalError with that code (203) and error_str as the message
//
// The state is returned unchanged.
func (v *Validator) ValidateShow(ctx context.Context, args Args, mandatory []string, state RequestState) (Outcome, RequestState) {
	outcome := v.validateShow(args, mandatory)
	v.report(ctx, VariantShow, outcome, state)
	return outcome, state
}

func (v *Validator) validateShow(args Args, mandatory []string) Outcome {
	ok, _ := CheckMandatory(args, mandatory)
	errValue, present := args.Get(ParamError)
	if !ok || !present {
		return v.localError(ErrCodeMissingFields, StatusShowMissing)
	}

	code, err := strconv.Atoi(strings.TrimSpace(errValue))
	if err != nil {
		return v.localError(ErrCodeMissingFields, StatusShowMissing)
	}

	if code != 0 {
		errorStr, _ := args.Get(ParamErrorStr)
		return LocalError{Code: ErrorCode(code), Status: StatusShowError, Message: errorStr}
	}

	return Valid{}
}

func (v *Validator) localError(code ErrorCode, status int) LocalError {
	return LocalError{Code: code, Status: status, Message: v.policy.Message(int(code))}
}

func (v *Validator) redirect(state RequestState, code ErrorCode, fields ...Field) Redirect {
	return Redirect{
		Version:   state.Version,
		ReturnURL: state.ReturnURL,
		Code:      code,
		Fields:    fields,
	}
}

func (v *Validator) isWellFormedURL(raw string) bool {
	return v.urlValidator.Var(raw, "url") == nil
}

func hasScheme(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

func (v *Validator) recordCertCheck(result string) {
	if v.recorder != nil {
		v.recorder.RecordCertCheck(result)
	}
}

// report logs non-valid outcomes at WARN and passes every outcome to the recorder
func (v *Validator) report(ctx context.Context, variant string, outcome Outcome, state RequestState) {
	code := Code(outcome)

	if v.recorder != nil {
		v.recorder.RecordOutcome(variant, outcome.Kind(), int(code))
	}

	if _, ok := outcome.(Valid); ok {
		return
	}

	message := v.policy.Message(int(code))
	if le, ok := outcome.(LocalError); ok {
		message = le.Message
	}

	reqLogger := logger.ContextRequestLogger(ctx)
	reqLogger.Warn("Request validation failed",
		slog.String("route", state.Route),
		slog.String("request_id", state.RequestID),
		slog.String("device_key_id", deviceKeyID(state.DevicePublicKey, v.maxParamSize)),
		slog.String("variant", variant),
		slog.String("outcome", outcome.Kind()),
		slog.Int("error_code", int(code)),
		slog.String("error", message),
	)

	logger.ContextWithLogAttrs(ctx,
		slog.Int("validation_error_code", int(code)),
	)
}

// deviceKeyID identifies the device key in logs without writing the raw parameter:
// the JWK thumbprint when the key parses, otherwise a hash of the raw value.
func deviceKeyID(raw string, maxSize int64) string {
	if raw == "" {
		return ""
	}
	if keyBytes, err := crypto.DecodeBase64URL(raw, maxSize); err == nil {
		if key, err := crypto.ParsePublicKeyPEM(keyBytes); err == nil {
			if id, err := crypto.PublicKeyID(key); err == nil {
				return id
			}
		}
	}
	h, err := crypto.Hash([]byte(raw))
	if err != nil {
		return ""
	}
	return "sha256:" + h[:16]
}
