// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull text
// content out of a specific MIME type.
//
// Extractors are registered with the Registry at startup.
package extractors
