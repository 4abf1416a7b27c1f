// Package dom holds the document tree produced by the tree builder.
//
// Nodes live in an arena owned by Tree and are addressed by NodeID; Node is a
// small value handle over (tree, id). The root is a synthetic document node.
// Every other node has exactly one parent and children keep document order.
//
// Queries (GetTextNodes, GetNodes, Find, Text) walk the tree in depth-first
// pre-order with an explicit stack and never mutate it.
package dom
