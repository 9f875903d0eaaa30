// Package planner plans collision-free routes for a mobile robot on a 2D map
// of obstacle line segments.
//
// It exposes three entry points:
//
//   - Search: run A* over an eight-way motion lattice to completion and get a Result.
//   - Stepper: iterate the same search one expansion at a time to drive UIs or debugging tools.
//   - Planner: hold the map, goal and path for a control loop and hand out
//     local goals, replanning when the current path runs out.
//
// Lattice points are keyed by integer cell indices relative to the search
// start, so revisiting a cell never depends on floating point equality.
package planner
