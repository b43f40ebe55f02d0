package apperrors

import "fmt"

// ValidationError reports bad per-request input (missing title or media file).
// Handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConfigurationError reports missing process-wide setup (API key, policy id).
// It is distinct from ValidationError so a broken deployment never masquerades
// as a client mistake.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UploadError reports that the IPFS upload returned no usable hash.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string { return e.Message }

// RemoteAPIError carries a structured error returned by a remote service.
// Body is forwarded verbatim to the caller for debuggability.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Body)
}

// ImageDecodeError reports that the QR overlay was given bytes that are not a
// decodable raster image. The request is aborted before any upload attempt.
type ImageDecodeError struct {
	Err error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }
