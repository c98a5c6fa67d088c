package main

import "github.com/vietddude/linkedin-mcp/internal/cli"

func main() {
	cli.Execute()
}
