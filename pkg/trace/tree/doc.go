// Package tree turns a validated span index into a positioned
// composition tree, the geometric form of a fork-join trace.
//
// The tree has three node kinds. Task leaves are real work intervals
// (or synthesized idle gaps) that are duration wide and one unit tall.
// Parallel groups hold branches that ran concurrently and grow along
// the x axis. Sequence groups hold steps that ran one after another and
// grow along the y axis. Because widths are durations and heights count
// stacked steps, the root footprint summarizes the whole trace: total
// width is elapsed-time-shaped, total height reflects sequential depth.
//
// Usage is three calls:
//
//	root := tree.Build(idx)
//	root.Place(0, 0)
//	edges := root.Edges()
//
// Build derives structure purely from parent links and the join tag,
// Place resolves absolute coordinates top-down, and Edges yields the
// happened-before connections between consecutive sequence steps. All
// three are deterministic for a given index, so downstream artifacts
// can be cached byte-for-byte.
package tree
