package main

import "github.com/tripfolio/cityscout/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
