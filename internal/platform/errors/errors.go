package errors

import (
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Domain is the error domain for Oripheon errors.
const Domain = "github.com/louisbranch/oripheon"

// Metadata keys that name the override fields an error is about.
const (
	MetaField  = "Field"
	MetaValue  = "Value"
	MetaFields = "Fields"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for templating
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata for i18n templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// fields lists the override fields named by the metadata, in order.
func (e *Error) fields() []string {
	if f := strings.TrimSpace(e.Metadata[MetaField]); f != "" {
		return []string{f}
	}
	var out []string
	for _, f := range strings.Split(e.Metadata[MetaFields], ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ToGRPCStatus converts the error to a gRPC status. The status message keeps
// the internal message; LocalizedMessage carries userMessage. Invalid
// overrides also carry a BadRequest naming the field, and constraint
// conflicts a PreconditionFailure per conflicting field.
func (e *Error) ToGRPCStatus(locale string, userMessage string) error {
	grpcCode := e.Code.GRPCCode()
	base := status.New(grpcCode, e.Message)

	details := []protoadapt.MessageV1{
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	}
	if fields := e.fields(); len(fields) > 0 {
		switch e.Code {
		case CodeGenomeInvalidOverride:
			req := &errdetails.BadRequest{}
			for _, f := range fields {
				req.FieldViolations = append(req.FieldViolations, &errdetails.BadRequest_FieldViolation{
					Field:       "overrides." + f,
					Description: userMessage,
				})
			}
			details = append(details, req)
		case CodeGenomeConstraintConflict:
			pre := &errdetails.PreconditionFailure{}
			for _, f := range fields {
				pre.Violations = append(pre.Violations, &errdetails.PreconditionFailure_Violation{
					Type:        string(e.Code),
					Subject:     "overrides." + f,
					Description: userMessage,
				})
			}
			details = append(details, pre)
		}
	}

	st, err := base.WithDetails(details...)
	if err != nil {
		return base.Err()
	}
	return st.Err()
}
