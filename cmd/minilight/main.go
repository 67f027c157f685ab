// Command minilight is MiniLight's CLI entry point: parse a model file,
// render it, and write "<modelPath>.ppm". It is grounded on the teacher's
// achilleasa-polaris main.go, which builds the same kind of urfave/cli app
// around a render action.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/hxa7241/minilight/pkg/driver"
	"github.com/hxa7241/minilight/pkg/minilog"
	"github.com/urfave/cli"
)

var logger = minilog.New("minilight")

func main() {
	cli.HelpFlag = cli.BoolFlag{
		Name:  "help, h, ?",
		Usage: "show help",
	}

	app := cli.NewApp()
	app.Name = "minilight"
	app.Usage = "minimal unbiased global illumination renderer"
	app.Version = "1.0.0"
	app.ArgsUsage = "modelPath"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "row-band parallel workers per frame (0 or 1: single-threaded)",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress per-iteration progress logging",
		},
	}
	app.Action = render

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

func render(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("missing modelPath argument")
	}

	if ctx.Bool("quiet") {
		minilog.SetLevel(minilog.Notice)
	} else {
		minilog.SetLevel(minilog.Info)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return driver.Run(sigCtx, ctx.Args().First(), ctx.Int("workers"), ctx.Bool("quiet"))
}
