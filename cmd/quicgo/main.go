package main

import (
	"github.com/quicforge/quicgo/cmd"
)

func main() {
	cmd.CmdQuicGo.Execute()
}
