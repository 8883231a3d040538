// Package pkg provides the libraries behind ktml, a texture map loader for
// shader node trees.
//
// # Overview
//
// ktml recognises the role of a texture file (Diffuse, Roughness, Normal,
// ...) from its name, loads texture sets into the image nodes of a shader
// tree, and wires the bundled K-Tools node groups together. The pkg
// directory is organized into these areas:
//
//  1. [maptype] - Keyword classifier and priority ordering
//  2. [shadergraph] - In-memory scene, node trees and group library
//  3. [wiring] - Group-to-group link resolver
//  4. [ops] - Editor operators (load, batch settings, add group, connect)
//  5. [config], [settings] - Persisted preferences and tool settings
//  6. [scenefile], [render] - Scene files and node diagrams
//
// # Architecture
//
//	texture files ──► [maptype] classify ──► [ops] LoadTextureSet ──► image nodes
//	                                                                     │
//	  Mapping ──► Maps Loader ──► BSDF     ◄── [wiring] Resolve ◄── [ops] Connect
//
// [ops] is the only package that sees the whole scene. [maptype] and
// [wiring] depend on nothing but their inputs; [wiring] talks to a tree
// through its Host interface.
//
// # Quick Start
//
// Classify a file and wire a selection:
//
//	import (
//	    "github.com/r-kez/k-tools-texture-map-loader/pkg/config"
//	    "github.com/r-kez/k-tools-texture-map-loader/pkg/ops"
//	)
//
//	prefs := config.Default()
//	info := prefs.Table().ClassifyFile("wood_floor_diff_4k.png") // Diffuse, COLOR
//
//	env := ops.NewEnv(scene)
//	res, err := ops.Connect(ctx, env)
//	if err != nil {
//	    // refused: nothing changed
//	}
//	fmt.Println(res.Message())
//
// [maptype]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/maptype
// [shadergraph]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/shadergraph
// [wiring]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/wiring
// [ops]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/ops
// [config]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/config
// [settings]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/settings
// [scenefile]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/scenefile
// [render]: https://pkg.go.dev/github.com/r-kez/k-tools-texture-map-loader/pkg/render
package pkg
