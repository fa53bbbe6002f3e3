// Package main provides the res2csv command-line tool for extracting
// reservoir simulator data to CSV.
package main

import "github.com/berland/res2df/internal/cli"

func main() {
	cli.ExecuteRes2csv()
}
