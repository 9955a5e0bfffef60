package main

import (
	"github.com/doganiot/mywordismyword/cmd"
)

func main() {
	cmd.Execute()
}
