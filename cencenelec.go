// Package cencenelec provides a document-harvesting plugin for the
// CEN/CENELEC standards portal. A collection pass enumerates publications
// and returns them as normalized document records; a download helper
// drives a browser to fetch a file and waits for it to land on disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, fs/).
package cencenelec

// SourceName identifies this plugin to the harvesting platform.
const SourceName = "cen&cenelec"

// Host is the root URL of the CEN/CENELEC standards portal.
const Host = "https://standards.cencenelec.eu"
