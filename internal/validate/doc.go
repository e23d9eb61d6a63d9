// Package validate checks the query parameters of the PID/mDL issuance routes before any credential work is done.
//
// There are two orchestrators:
//
//   - ValidateIssue for the issue routes (/pid/getpid, /mdl/getmdl). It checks the device public key, the
//     return URL, the country, the mandatory fields and the wallet certificate, in that order, and stops at
//     the first failure.
//   - ValidateShow for /pid/show, where the caller is told whether the issuer reported an error.
//
// Each call returns an Outcome (Valid, LocalError or Redirect) and the updated RequestState.
// Failures the wallet cannot recover from are answered locally (LocalError); business failures are sent
// back to the wallet's return URL (Redirect).
package validate
