package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cfoust/mcdump/pkg/config"
	"github.com/cfoust/mcdump/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Build struct {
		Version string   `arg:"" name:"version" help:"The Minecraft version to build, e.g. 1.21.11."`
		Configs []string `optional:"" name:"configs" help:"Configuration files for the build." type:"file"`
		Force   bool     `help:"Overwrite an existing output directory for this version."`
	} `cmd:"" help:"Build the asset data bundle for a version."`

	Config struct {
	} `cmd:"" help:"Write mcdump's default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("mcdump"),
		kong.Description("a Minecraft asset data extractor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"mcdump %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	switch ctx.Command() {
	case "build <version>":
		err := buildCommand(CLI.Build.Version, CLI.Build.Configs, CLI.Build.Force)
		if err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
}
