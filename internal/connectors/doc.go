// Package connectors holds the input sources that feed the graph store
// from outside the CLI. The filesystem connector watches a directory for
// extractor output files.
package connectors
