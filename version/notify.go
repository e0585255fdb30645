package version

import (
	"context"
	"fmt"
	"io"

	"github.com/shopfetch/shopfetch/color"
	"github.com/shopfetch/shopfetch/constant"
	"github.com/shopfetch/shopfetch/icon"
	"github.com/shopfetch/shopfetch/key"
	"github.com/shopfetch/shopfetch/style"
	"github.com/shopfetch/shopfetch/util"
	"github.com/spf13/viper"
)

// Notify writes a notice to w when a newer release exists and
// cli.version_check is on.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(w, fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
