// Package googledrive implements a material source that fetches course
// files from a Google Drive folder.
//
// The source lists one folder (non-recursive), exports Google Docs and
// Slides to plain text and Sheets to CSV, and downloads regular text
// and PDF files. Content is size-capped at 5MB per file. Requests go
// through an x/time/rate token bucket kept under Drive's per-user
// quota, with a backoff window after 429 responses.
//
// Authentication uses the token provider supplied at construction,
// adapted to an oauth2.TokenSource for the generated Drive client.
// Expired tokens are refreshed by the provider, not here.
package googledrive
