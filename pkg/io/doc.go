// Package io provides JSON and TOML import and export for automaton
// definitions.
//
// # Overview
//
// This package serializes transition tables to and from a small declarative
// format. The format is designed for:
//
//   - Hand-written machine definitions as CLI input
//   - Integration with external tools that produce or consume automata
//   - Round-trip preservation: import, transform, export, and re-import
//
// # Wire Format
//
// The document is a single mapping from state label to state entry:
//
//	{
//	  "S0": {"start": true,  "accept": false, "on": {"0": "S0", "1": "S1"}},
//	  "S1": {"start": false, "accept": true,  "on": {"0": ["S0", "S1"]}}
//	}
//
// The TOML rendering is the same shape, one table per state:
//
//	[S0]
//	start = true
//	accept = false
//	on = { "0" = "S0", "1" = "S1" }
//
// # State Fields
//
// Required:
//   - start: whether this state is the entry point (exactly one state should
//     set it)
//   - accept: whether halting here accepts the input
//
// Optional:
//   - on: symbol-to-target mapping; a target is a single label for a
//     deterministic transition or a list of labels for a nondeterministic one
//
// The flags are mandatory so a definition never accepts silently because a
// field was misspelled.
//
// # Import
//
// Use [Import] to read a definition from a file path (encoding picked by
// extension), or [ReadJSON]/[ReadTOML] to read from any io.Reader:
//
//	m, err := io.Import("even.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All readers validate the document shape and then the definition itself
// (unknown targets, missing start state, label conventions). Errors carry the
// offending state or symbol and a machine-readable code from
// [github.com/matzehuels/statecraft/pkg/errors].
//
// # Export
//
// Use [Export] to write a machine to a file, or [WriteJSON]/[WriteTOML] to
// write to any io.Writer. Single-target transitions serialize as a bare label
// and multi-target ones as a list, so exported documents re-import to an
// equivalent machine.
package io
