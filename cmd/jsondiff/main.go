// Command jsondiff compares two JSON documents, tolerating the differences
// it's told to ignore. It exits with status 1 when the documents differ.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
