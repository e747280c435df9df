package main

import "github.com/charliek/tracehelper/internal/cli"

func main() {
	cli.Execute()
}
