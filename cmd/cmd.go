package cmd

import (
	"github.com/quicforge/quicgo/std/utils"
	"github.com/quicforge/quicgo/tools"
	"github.com/spf13/cobra"
)

const banner = `
   ___        _       ____
  / _ \ _   _(_) ___ / ___| ___
 | | | | | | | |/ __| |  _ / _ \
 | |_| | |_| | | (__| |_| | (_) |
  \__\_\\__,_|_|\___|\____|\___/

QUIC transport internals
`

var CmdQuicGo = &cobra.Command{
	Use:     "quicgo",
	Short:   "QUIC transport internals",
	Long:    banner[1:],
	Version: utils.QuicGoVersion,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdQuicGo.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdQuicGo.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdQuicGo.PersistentFlags().Lookup("help").Hidden = true

	CmdQuicGo.AddGroup(&cobra.Group{ID: "tools", Title: "Debug Tools"})
	CmdQuicGo.AddCommand(tools.CmdCCSim())
}
