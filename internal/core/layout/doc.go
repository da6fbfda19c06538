// Package layout implements a force-directed layout over graph nodes.
//
// The simulation follows the d3-force model: a link force pulls connected
// nodes toward a target distance, a many-body force pushes every pair of
// nodes apart, and a centering force keeps the layout's mean on a point.
// Energy (alpha) decays every tick until it drops below AlphaMin, at
// which point the layout is at rest.
//
// The package never schedules anything itself. Callers drive it by
// calling Tick from whatever timer their host provides.
package layout
