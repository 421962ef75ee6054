package driving

import "context"

// Importer drains a material source into a course: each fetched file is
// registered as a document and processed.
type Importer interface {
	// Import fetches every document the spec's source yields and
	// processes it into the course. Per-document failures are recorded
	// in the report and do not stop the import.
	Import(ctx context.Context, courseID string, spec ImportSpec) (*ImportReport, error)
}

// Material source types an ImportSpec can name.
const (
	ImportSourceDirectory   = "filesystem"
	ImportSourceGitHub      = "github"
	ImportSourceGoogleDrive = "googledrive"
)

// ImportSpec selects and configures a material source.
type ImportSpec struct {
	// SourceType is one of the ImportSource constants.
	SourceType string

	// Path is the directory to walk (filesystem).
	Path string

	// Repo is the "owner/name" repository (github).
	Repo string

	// FolderID is the Drive folder to list (googledrive).
	FolderID string

	// Patterns optionally restricts fetched files (e.g. "*.pdf").
	Patterns []string
}

// ImportReport summarises one import run.
type ImportReport struct {
	// Fetched is how many documents the source yielded.
	Fetched int

	// Processed is how many documents reached StatusDone.
	Processed int

	// Failed is how many documents could not be fetched or processed.
	Failed int

	// Errors holds one message per failure, in occurrence order.
	Errors []string
}
