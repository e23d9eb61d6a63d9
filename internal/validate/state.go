package validate

// RequestState is the per-request context the orchestrators read and update.
//
// The caller owns it: it is passed into each call and the updated copy is returned, so the values
// recorded while validating an issue request (device key, return URL) can be handed to later steps
// of the same flow.
type RequestState struct {
	// Route is the route pattern being served, e.g. /pid/getpid
	Route string

	// Version is the API version carried into redirects
	Version string

	RequestID string

	// DevicePublicKey is the raw (base64url) device_publickey parameter, once seen
	DevicePublicKey string

	// ReturnURL is the raw returnURL parameter, once seen
	ReturnURL string
}
