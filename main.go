// Package main is the entry point for the dotametrics CLI tool, which fetches
// OpenDota match histories and computes cumulative win-rate time series.
package main

import "github.com/pable/go-dota-metrics/cmd"

func main() {
	cmd.Execute()
}
