// Package guardscan provides the guardscan command line. It wires flags and
// config files into the scan engine and renders results.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/guardscan/cmd/guardscan"
//	func main() { guardscan.Execute() }
package guardscan
