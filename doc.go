// Package treedelta computes structural differences between immutable,
// content addressed trees and rebuilds trees from sparse sets of path
// edits, on top of any storer.EncodedObjectStorer.
//
// Diff enumerates the paths whose content or mode differ between two tree
// snapshots, in time proportional to the number of changes rather than the
// size of the trees. Rebuild derives a new tree from a base tree and an
// edit map, creating and pruning intermediate directories as needed.
// Filter keeps only a requested subset of paths.
//
// The engines are pure: they never mutate an existing object and they hold
// no state between calls, so concurrent calls against the same storer are
// safe as long as the storer's read path is.
package treedelta
