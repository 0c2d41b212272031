// Command runmunch expands and recovers Hunspell-style morphological word forms.
package main

import (
	"fmt"
	"os"

	"github.com/kost/runmunch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
