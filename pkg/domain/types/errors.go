package types

import "github.com/m-mizutani/goerr/v2"

// Error kinds surfaced by download operations. Handlers map them to HTTP status codes.
var (
	// ErrTagRemoteInvocation marks any failure while talking to the remote SOAP service.
	ErrTagRemoteInvocation = goerr.NewTag("remote_invocation")

	// ErrTagNotFound marks a download that returned no payload.
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagValidation marks a malformed or incomplete request body. The wrapped cause is a
	// model.ValidationErrors.
	ErrTagValidation = goerr.NewTag("validation")
)
