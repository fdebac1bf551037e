// Command minimcp runs one of the bundled MCP tool servers over stdio, or
// inspects and invokes their tools from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
