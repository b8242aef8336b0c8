// Package cli implements the utilkit command line tool.
package cli
