// Package main provides the csv2res command-line tool for rendering
// CSV files back to simulator deck include files.
package main

import "github.com/berland/res2df/internal/cli"

func main() {
	cli.ExecuteCsv2res()
}
