// Package surface is the interaction state of the graph view.
//
// A Surface owns the unfiltered graph, the filtered graph currently on
// screen, the force simulation laid over it, the view transform and the
// highlight state. It does not draw and does not schedule: renderers
// read a Scene after each change and drive Tick from their own timer,
// passing back the generation they were started with. Replacing the
// graph or the filter bumps the generation, which turns every tick still
// queued for the old simulation into a no-op.
package surface
