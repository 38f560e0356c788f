package errors

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/oripheon/internal/platform/errors/i18n"
)

// DefaultLocale is used when a request names no locale.
const DefaultLocale = "en-US"

// HandleError turns err into the status returned to a gRPC caller. Domain
// errors carry their catalog message in locale. Anything else becomes a bare
// Internal status so its text never reaches the caller.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, "an unexpected error occurred")
	}
	if locale == "" {
		locale = DefaultLocale
	}
	catalog := i18n.GetCatalog(locale)
	return appErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(appErr.Code), appErr.Metadata))
}

// FromGRPCStatus rebuilds the domain error carried by a gRPC status error
// along with its localized message. The message falls back to the status
// message when no LocalizedMessage is attached. ok is false for errors that
// are not gRPC statuses.
func FromGRPCStatus(err error) (appErr *Error, message string, ok bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return nil, "", false
	}
	message = st.Message()
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() == Domain {
				appErr = &Error{Code: Code(d.GetReason()), Message: st.Message(), Metadata: d.GetMetadata()}
			}
		case *errdetails.LocalizedMessage:
			if d.GetMessage() != "" {
				message = d.GetMessage()
			}
		}
	}
	return appErr, message, true
}

// GetCode returns the code of the first domain error in err's chain, or
// CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata returns the template metadata of a domain error, or nil.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
