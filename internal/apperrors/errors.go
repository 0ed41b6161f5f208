package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAnalysisNotFound indicates that an analysis with the given ID does not exist.
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrDocumentNotFound indicates that the document store holds no matching record.
	ErrDocumentNotFound = errors.New("document not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidConfiguration indicates malformed financing inputs, such as a negative
	// rate or a zero mortgage term combined with a non-zero mortgage percentage.
	ErrInvalidConfiguration = errors.New("invalid financing configuration")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidFilterField indicates a document-store filter on a field name that is not allowed.
	ErrInvalidFilterField = errors.New("invalid filter field")
)

// External collaborator errors. These never reach API clients: the engine and the
// advisor substitute documented fallback values instead.
var (
	// ErrGeneratorUnavailable indicates that no advisory text generator is configured.
	ErrGeneratorUnavailable = errors.New("advisory text generator unavailable")

	// ErrMalformedAdvisorResponse indicates a response that is not the expected strict JSON.
	ErrMalformedAdvisorResponse = errors.New("malformed advisor response")

	// ErrEmptyAdvisorResponse indicates the generator returned no text.
	ErrEmptyAdvisorResponse = errors.New("empty advisor response")
)

// Operation failure errors represent system-level failures when retrieving or storing data.
var (
	ErrFailedToAnalyze           = errors.New("failed to analyze property")
	ErrFailedToSaveAnalysis      = errors.New("failed to save analysis")
	ErrFailedToRetrieveAnalysis  = errors.New("failed to retrieve analysis")
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio")
	ErrFailedToGetVersionInfo    = errors.New("failed to get version information")
	ErrFailedToEncryptNotes      = errors.New("failed to encrypt notes")
	ErrFailedToDecryptNotes      = errors.New("failed to decrypt notes")
	ErrFailedToPurgeAnalyses     = errors.New("failed to purge expired analyses")
)
