// Package widget holds the state of each pane of the editor. Widgets are plain
// values mutated by the ui package; none of them renders or performs I/O.
package widget
