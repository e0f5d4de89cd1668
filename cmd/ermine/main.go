// Command ermine mines equivalence-class sequential rules from a
// SPMF-formatted sequence database.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
