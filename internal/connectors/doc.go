// Package connectors provides material sources for the supported
// course-material locations: a local directory, a GitHub repository and
// a Google Drive folder. Each source streams raw documents over a
// channel so imports can process files as they arrive.
//
// The Factory builds a source from an import spec and is handed to the
// import service as its source factory.
package connectors
