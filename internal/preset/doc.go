// Package preset loads named filter specs from YAML or CUE files.
//
// Both formats share one shape:
//
//	name: low-gap-oxides
//	description: Oxides with a small band gap
//	ranges:
//	  band_gap: {min: 0.0, max: 1.5}
//	formula: O
//	elements: [Fe, O]
//
// YAML files are decoded strictly (unknown keys are errors). CUE files are
// unified with the embedded #Preset schema before decoding. Every loaded
// preset is then checked by the engine's spec validation.
package preset
