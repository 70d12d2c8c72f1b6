package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/Zachdehooge/distbuilder/cmd/distbuilder/commands"
	"github.com/Zachdehooge/distbuilder/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("distbuilder"),
		kong.Description("Packages a Python application into a standalone executable and zips it for distribution."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("distbuilder %s (%s)", version.Version, version.GitCommit)},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
