// Package io reads turning-movement counts from files and writes built
// options back out.
//
// # Input Format
//
// A counts document has one table per approach, keyed by compass point, and
// an optional config table overriding the diagram style. JSON:
//
//	{
//	  "n": {"left": 12, "front": 40, "right": 9, "turn": 1},
//	  "s": {"left": 7, "front": 35, "right": 11, "turn": 0},
//	  "w": {"left": 3, "front": 18, "right": 6, "turn": 0},
//	  "e": {"left": 5, "front": 22, "right": 4, "turn": 2},
//	  "config": {"boxSize": 200, "colorList": ["#000", "#111", "#222", "#333"]}
//	}
//
// TOML:
//
//	[n]
//	left = 12
//	front = 40
//	right = 9
//	turn = 1
//
//	[config]
//	box_size = 200
//
// Missing approaches and movements count as zero. Unknown keys are rejected
// so that a typo does not silently zero a movement.
//
// # Output
//
// [WriteOption] and [ExportOption] write an option as indented JSON, ready to
// be passed to a chart's setOption.
package io
