package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/database"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/version"
)

// Features describes which optional collaborators are configured.
type Features struct {
	AdvisoryText    bool
	NotesEncryption bool
	Retention       bool
}

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	store    *repository.DocumentStore
	features Features
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, store *repository.DocumentStore, features Features) *SystemService {
	return &SystemService{
		db:       db,
		store:    store,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports application and schema versions, configured features
// and document counts per collection.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, pending, err := database.SchemaStatus(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}

	counts, err := s.store.Counts(ctx)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}
	for _, c := range []string{repository.AnalysesCollection, repository.SavedAnalysesCollection} {
		if _, ok := counts[c]; !ok {
			counts[c] = 0
		}
	}

	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"advisory_text":    s.features.AdvisoryText,
			"notes_encryption": s.features.NotesEncryption,
			"retention":        s.features.Retention,
		},
		Collections:     counts,
		MigrationNeeded: pending,
	}
	if pending {
		msg := "database schema has pending migrations; restart the server to apply them"
		info.MigrationMessage = &msg
	}

	return info, nil
}
