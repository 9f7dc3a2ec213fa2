// Package graph serializes dependency graphs and their layouts as JSON.
//
// # Format
//
// A [Graph] lists the symbol table in discovery order, each node with its
// dependencies and role, followed by the final results:
//
//	{
//	  "nodes": [
//	    {"key": "x", "role": "terminal"},
//	    {"key": "x + x", "deps": ["x", "x"], "role": "intermediate"},
//	    {"key": "y", "deps": ["x + x"], "role": "final"}
//	  ],
//	  "finals": ["y"]
//	}
//
// A [Document] adds the computed layout and the source language; it is what
// the json output format writes, and what the pipeline caches.
//
// # Round Trips
//
// [ReadGraph] and [UnmarshalDocument] validate what they read: keys are
// unique, dependencies refer to earlier nodes, and a document's layout
// places the same nodes in the same order as its graph.
package graph
