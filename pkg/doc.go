// Package pkg holds the libraries behind crossflow, a builder for four-way
// intersection traffic-flow diagrams.
//
// # Overview
//
// Crossflow takes movement counts per approach (left, straight ahead,
// right, U-turn) and lays them out as a graph-chart option: one marker per
// inbound and outbound track, one line per movement, widths proportional to
// the counts. The packages are organized as:
//
//  1. [crossflow] - the domain: directions, movements, topology, geometry and
//     the option builder
//  2. [io] - counts documents in JSON or TOML, option JSON output
//  3. [render/dot] - Graphviz DOT export of a built option
//  4. [pipeline] - build → export orchestration with caching
//  5. [cache], [observability], [errors], [config] - supporting infrastructure
//  6. [server] - the HTTP API
//
// # Data Flow
//
//	counts.json / counts.toml
//	         ↓
//	    [io] package (decode counts and optional style)
//	         ↓
//	    [crossflow] package (totals, offsets, Build)
//	         ↓
//	    [pipeline] package (cache, export)
//	         ↓
//	    option JSON / DOT
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/crossflow/pkg/crossflow"
//	    "github.com/matzehuels/crossflow/pkg/io"
//	)
//
//	counts, _ := io.ImportCrossroad("counts.json")
//	opt := crossflow.Build(counts, crossflow.Config{})
//	io.WriteOption(os.Stdout, opt)
//
// The builder never fails: any counts produce a complete option. Strict input
// checks live in [errors.ValidateCounts] and are opt-in.
package pkg
