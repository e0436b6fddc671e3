// Package wcdoc builds documentation indices from parsed doc-comment records.
// It groups records by source file and entity name, merges the per-file
// groups of each entity, and picks a canonical declaration among base and
// extension variants before handing each entity to a renderer.
//
// This package contains domain types, the pure indexing core and the
// collaborator interfaces, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, goldmark/, jsonschema/).
package wcdoc
