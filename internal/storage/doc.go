// Package storage implements task list backends.
//
// JSONFile keeps the list in a single JSON document, an ordered array of
// task records. Every Save rewrites the whole file (2-space indentation,
// trailing newline) through a temporary file and a rename, so readers see
// either the old or the new list. A missing file, an empty file or a
// literal null all load as an empty list.
//
// Files are checked against an embedded JSON Schema (draft 2020-12) before
// decoding. The schema covers field types, the date-time format of dueDate
// and non-empty id and name; duplicate ids are checked separately. With
// Strict set, an invalid file fails Load; otherwise problems are reported
// through the Warn callback and decoding proceeds.
//
// Memory is an in-process backend for tests and dry runs.
package storage
