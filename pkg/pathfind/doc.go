// Package pathfind finds shortest link paths between articles.
//
// The search is a plain breadth-first search over a [wiki.Graph]. Links
// are followed in the order [wiki.Graph.LinksFrom] returns them, so among
// several shortest paths the one found is decided by link order in the
// source file, not by titles or ids.
//
// The search stops when the target is taken off the queue, not when it is
// first discovered. Both give a path of the same length; the difference is
// only visible in how many articles are expanded, which [WithVisitor]
// exposes.
//
// # Outcomes
//
//   - a path: ids from start to target inclusive; [start] when they are equal
//   - [ErrNoPath] (code NO_PATH): the target is unreachable, a normal result
//   - [*NotFoundError] (code NOT_FOUND): a title does not resolve
package pathfind
