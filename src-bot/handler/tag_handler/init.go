// Tag commands are backed by the companion site's API instead of the local
// database, so anything shown here stays in sync with the website.
package tag_handler

import (
	"squire/dgmux"
	"squire/src-bot/utils"
)

// Init injects one "tags" prefix command with multiple subcommands into the
// muxer in AppState.
func Init(as *utils.AppState) {
	localSubCmds := make([]*dgmux.Command, 0)

	get(as, &localSubCmds)
	set(as, &localSubCmds)
	delete(as, &localSubCmds)
	list(as, &localSubCmds)

	as.Mux.Register(&dgmux.Command{
		Name:        "tags",
		Aliases:     []string{"tag"},
		Description: "Tag management commands.",
		Usage:       "<subcommand>",
		Subcommands: localSubCmds,
	})
}
