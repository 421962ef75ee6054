// Package github implements a material source that fetches course
// files from a single GitHub repository.
//
// The source walks the repository tree at the default branch using the
// recursive Trees API, fetches matching blobs and converts them to raw
// documents. Only course-material file types are fetched (Markdown,
// plain text, PDF), optionally narrowed further by glob patterns.
//
// # Authentication
//
// A personal access token is read through the token provider supplied
// at construction. Classic or fine-grained tokens work; private
// repositories need the 'repo' scope. Authenticated requests get 5,000
// API calls per hour.
//
// # Rate Limiting
//
// Requests go through a dual-strategy rate limiter:
//
//  1. Proactive throttling: a token bucket limits requests to roughly
//     1.2 per second, staying well under the hourly quota.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset
//     headers are tracked. When the quota runs low the source waits for
//     the reset time before continuing.
//
// # Document Structure
//
// Documents are emitted with github://{owner}/{repo}/blob/{branch}/{path}
// URIs and the repository-relative path as filename. Metadata carries
// the repository coordinates, blob SHA, size and web URL.
//
// # Limitations
//
//   - Files larger than 5MB are skipped.
//   - Only the default branch is fetched.
//   - Truncated trees (very large repositories) fetch what the API
//     returned and report the truncation on the error channel.
package github
