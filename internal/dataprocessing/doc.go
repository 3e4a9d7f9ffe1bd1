// Package dataprocessing implements the record reconciliation and
// consolidation pipeline: it reads arbitrarily-shaped course workbooks,
// finds the true student identifier column among look-alikes, extracts
// and canonicalizes program-outcome (PC) columns, and merges per-student
// fragments from many files into one row per student.
//
// # Components
//
// 1. Normalization: two explicit column-label canonicalizations
// (NormalizeColumn and FoldColumn) used by the matchers below
// 2. Identifier handling: CleanIdentifier / ValidateIdentifier and the
// scoring-based SelectIdentifierColumn
// 3. Name extraction: BuildFullNames over the known column layouts
// 4. Outcome columns: detection, canonical numbering and 0/1 coercion
// 5. Consolidator: orchestrates discovery, roster loading, per-sheet
// extraction and the grouped merge
// 6. FilterRecords: pure AND-composed view filters over the result
//
// # Failure semantics
//
// Nothing below the run level is fatal: unreadable files, empty sheets,
// and sheets without identifier or outcome columns all become
// diagnostics on the domain.RunReport and processing continues. A run
// with zero usable fragments is a normal empty result.
package dataprocessing
