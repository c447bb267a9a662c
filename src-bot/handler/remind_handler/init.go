// Reminder commands write to the local database; the scheduler package
// watches it and does the actual pinging.
package remind_handler

import (
	"squire/dgmux"
	"squire/src-bot/utils"
)

// Init injects one "remind" prefix command with multiple subcommands into
// the muxer in AppState.
func Init(as *utils.AppState) {
	localSubCmds := make([]*dgmux.Command, 0)

	me(as, &localSubCmds)
	list(as, &localSubCmds)
	delete(as, &localSubCmds)

	as.Mux.Register(&dgmux.Command{
		Name:        "remind",
		Description: "Reminder commands.",
		Usage:       "<subcommand>",
		Subcommands: localSubCmds,
	})
}
