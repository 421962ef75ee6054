// Package services implements the driving port interfaces: course and
// document management, the document processing pipeline, retrieval and
// answer synthesis, study artifact generation, imports, account
// connection and settings. Services orchestrate calls to driven ports
// and hold no storage or transport code of their own.
package services
