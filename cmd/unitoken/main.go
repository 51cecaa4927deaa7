package main

import "unitoken/internal/cli"

func main() {
	cli.Execute()
}
