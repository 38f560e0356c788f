package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code. Each code has a message template
// in the errors catalog.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Caller-supplied overrides.
	CodeGenomeInvalidOverride    Code = "GENOME_INVALID_OVERRIDE"
	CodeGenomeConstraintConflict Code = "GENOME_CONSTRAINT_CONFLICT"

	// Table defects found while assembling a genome.
	CodeGenomeExhaustedRetry     Code = "GENOME_EXHAUSTED_RETRY"
	CodeGenomeInvariantViolation Code = "GENOME_INVARIANT_VIOLATION"

	CodeGenomeUnknownContext Code = "GENOME_UNKNOWN_CONTEXT"
	CodeGenomeUnknownFormat  Code = "GENOME_UNKNOWN_FORMAT"
	CodeGenomeUnknownTier    Code = "GENOME_UNKNOWN_TIER"
	CodeGenomeIDRequired     Code = "GENOME_ID_REQUIRED"
	CodeSeedOutOfRange       Code = "SEED_OUT_OF_RANGE"

	CodeNotFound Code = "NOT_FOUND"
)

var grpcCodes = map[Code]codes.Code{
	CodeGenomeInvalidOverride:    codes.InvalidArgument,
	CodeGenomeUnknownContext:     codes.InvalidArgument,
	CodeGenomeUnknownFormat:      codes.InvalidArgument,
	CodeGenomeUnknownTier:        codes.InvalidArgument,
	CodeGenomeIDRequired:         codes.InvalidArgument,
	CodeSeedOutOfRange:           codes.InvalidArgument,
	CodeGenomeConstraintConflict: codes.FailedPrecondition,
	CodeNotFound:                 codes.NotFound,
}

// GRPCCode maps c to a gRPC status code. Table defects and unknown codes
// map to Internal.
func (c Code) GRPCCode() codes.Code {
	if code, ok := grpcCodes[c]; ok {
		return code
	}
	return codes.Internal
}
