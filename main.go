package main

import (
	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/cmd"
	"github.com/shopfetch/shopfetch/config"
	"github.com/shopfetch/shopfetch/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
