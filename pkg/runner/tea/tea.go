// Package teaui hosts the full-screen planner surfaces: the month view
// flow and the entry setup flow.
package teaui
