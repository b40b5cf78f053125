package main

import "github.com/theirongolddev/saku/cmd"

func main() {
	cmd.Execute()
}
