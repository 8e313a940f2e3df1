//go:build modules.teams || modules.all
// +build modules.teams modules.all

package modules

import (
	"github.com/cheevoguild/uwcbot/modules/teams"
)

func init() {
	Add(&teams.Module{})
}
