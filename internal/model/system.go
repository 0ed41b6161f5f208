package model

// VersionInfo contains version, schema and feature information for the application.
// Collections reports the number of stored documents per document-store collection.
type VersionInfo struct {
	AppVersion       string           `json:"app_version"`
	DbVersion        string           `json:"db_version"`
	Features         map[string]bool  `json:"features"`
	Collections      map[string]int64 `json:"collections"`
	MigrationNeeded  bool             `json:"migration_needed"`
	MigrationMessage *string          `json:"migration_message,omitempty"`
}
