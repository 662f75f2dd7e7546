// cmd/console serves the URM admin console: a schema-driven user management
// page backed by a REST record store.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
