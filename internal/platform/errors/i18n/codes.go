package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGenomeInvalidOverride    = "GENOME_INVALID_OVERRIDE"
	CodeGenomeConstraintConflict = "GENOME_CONSTRAINT_CONFLICT"
	CodeGenomeExhaustedRetry     = "GENOME_EXHAUSTED_RETRY"
	CodeGenomeInvariantViolation = "GENOME_INVARIANT_VIOLATION"
	CodeGenomeUnknownContext     = "GENOME_UNKNOWN_CONTEXT"
	CodeGenomeUnknownFormat      = "GENOME_UNKNOWN_FORMAT"
	CodeGenomeUnknownTier        = "GENOME_UNKNOWN_TIER"
	CodeGenomeIDRequired         = "GENOME_ID_REQUIRED"
	CodeNotFound                 = "NOT_FOUND"
	CodeSeedOutOfRange           = "SEED_OUT_OF_RANGE"
)

// KnownCodes lists every code a locale catalog is expected to translate.
var KnownCodes = []Code{
	CodeGenomeInvalidOverride,
	CodeGenomeConstraintConflict,
	CodeGenomeExhaustedRetry,
	CodeGenomeInvariantViolation,
	CodeGenomeUnknownContext,
	CodeGenomeUnknownFormat,
	CodeGenomeUnknownTier,
	CodeGenomeIDRequired,
	CodeNotFound,
	CodeSeedOutOfRange,
}
