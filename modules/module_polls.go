//go:build modules.polls || modules.all
// +build modules.polls modules.all

package modules

import (
	"github.com/cheevoguild/uwcbot/modules/polls"
)

func init() {
	Add(&polls.Module{})
}
