//go:build modules.uwc || modules.all
// +build modules.uwc modules.all

package modules

import (
	"github.com/cheevoguild/uwcbot/modules/uwc"
)

func init() {
	Add(&uwc.Module{})
}
