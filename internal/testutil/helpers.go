package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/advisor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/engine"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/extractor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/secret"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/service"
)

// NewTestAnalysisService wires an AnalysisService against db.
// A nil generator uses the fallback rent estimate and insight; a nil extractor uses NewMockExtractor.
func NewTestAnalysisService(t *testing.T, db *sql.DB, gen advisor.TextGenerator, ext extractor.Extractor) *service.AnalysisService {
	t.Helper()

	if ext == nil {
		ext = NewMockExtractor()
	}

	return service.NewAnalysisService(
		engine.New(gen),
		advisor.New(gen, 0, nil),
		ext,
		repository.NewAnalysisRepository(repository.NewDocumentStore(db)),
		nil,
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, cipher *secret.NoteCipher) *service.PortfolioService {
	t.Helper()

	store := repository.NewDocumentStore(db)

	return service.NewPortfolioService(
		repository.NewAnalysisRepository(store),
		repository.NewSavedAnalysisRepository(store),
		cipher,
		nil,
	)
}

func NewTestRetentionService(t *testing.T, db *sql.DB, days int) *service.RetentionService {
	t.Helper()

	return service.NewRetentionService(
		repository.NewAnalysisRepository(repository.NewDocumentStore(db)),
		days,
		nil,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB, features service.Features) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, repository.NewDocumentStore(db), features)
}

// NewTestCipher creates a NoteCipher from a freshly generated fernet key.
func NewTestCipher(t *testing.T) *secret.NoteCipher {
	t.Helper()

	cipher, err := secret.NewNoteCipher(MakeKey(t))
	if err != nil {
		t.Fatalf("Failed to create test cipher: %v", err)
	}
	return cipher
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeKey generates a base64 fernet key for use in tests.
func MakeKey(t *testing.T) string {
	t.Helper()

	key, err := secret.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	return key
}

// Ptr returns a pointer to v.
//
// Example usage:
//
//	notes := testutil.Ptr("call the agent on Monday")
func Ptr[T any](v T) *T {
	return &v
}
