// Package output renders rulesync results for people.
//
// # Rendering Pipeline
//
//  1. Commands return structured results (types.SyncResult, types.StatusReport,
//     types.PruneResult)
//  2. The Renderer picks a named template from templates/ for each line
//  3. Template output contains XML-like style tags (e.g. <Success>...</Success>)
//  4. lipbalm expands the tags with the styles registry, or strips them in
//     no-color mode
//  5. The line goes to Out or ErrOut
//
// Confirmations, hints, informational lines and summaries go to Out.
// Warnings and errors go to ErrOut.
//
// # Color Support
//
// Colors are used when NoColor is false and the output writer is a
// terminal that supports them. The status table is drawn with pterm, whose
// colors follow the same switch.
package output
