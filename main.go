// Package main is the entry point for the tcgmetrics CLI tool, which parses
// Pokemon TCG Live match transcripts and computes player and card statistics.
package main

import "github.com/pokelog/go-tcg-metrics/cmd"

func main() {
	cmd.Execute()
}
