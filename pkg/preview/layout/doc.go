// Package layout computes the geometry of a panel preview.
//
// # Overview
//
// [Build] turns a [state.Config] into a [Layout] in four independent steps,
// all driven by the same [Frame]:
//
//  1. [ResolveFrame]: fit the panel into the 480×360 canvas (12px margin),
//     apply the zoom factor and center it
//  2. [BuildGhost]: the shifted back outline and its four connecting edges
//  3. [PlaceHole]: diameter priority (spec > cut > 0.93·nominal), clamping
//     to the panel, edge margin, projection to canvas pixels
//  4. [BuildDimensions]: width and height annotation lines
//
// Every function here is pure and safe for concurrent use. Degenerate inputs
// (zero or negative panel sizes) are not rejected; they produce whatever
// IEEE-754 arithmetic yields.
//
// # Edge Margin
//
// Each hole keeps [EdgeMargin] inches between its circle and every panel
// edge, checked independently per axis, lower bound first. [WithLegacyClamp]
// restores the older asymmetric vertical check for byte-compatible output.
//
// [state.Config]: github.com/matzehuels/panelview/pkg/state.Config
package layout
