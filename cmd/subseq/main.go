// Command subseq finds subsequences in the chains of macromolecular
// structures.
//
// Usage:
//
//	subseq [command] [targets...] [flags]
//
// Commands:
//
//	re          Search chains with regular expressions
//	local       Search chains with local alignments
//	global      Search chains with global alignments
//	info        Show the chains read from the inputs
//	version     Show version information
package main

func main() {
	Execute()
}
