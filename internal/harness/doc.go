// Package harness runs YAML query scenarios against the engine and compares
// their traces with golden files.
//
// # Scenario Format
//
//	name: oxide_filters
//	description: "Band gap ranges are inclusive"
//	snapshot: snap-oxides          # optional fixed snapshot id
//	dataset:
//	  records:                     # inline rows, or:
//	    - {id: mp-1, formula: Fe2O3, band_gap: 2.0, density: 5.2}
//	  # synthetic: {rows: 20, seed: 7}
//	steps:
//	  - filter:
//	      ranges: {band_gap: {min: 0.0, max: 3.0}}
//	    expect:
//	      ids: [mp-1]
//	  - find: mp-9
//	    expect:
//	      error: NOT_FOUND
//
// Each step is either a filter (a preset.Filter) or a find (a record id).
// An expect clause may check the ordered ids, the row count, or the error
// code the step must fail with.
//
// # Determinism
//
// The dataset is loaded through a provider.Cache with a fixed snapshot id,
// and synthetic datasets require a non-zero seed, so the same scenario
// always yields a byte-identical trace.
package harness
