// Package main is the sensordesc command itself.
package main

import (
	"os"

	"github.com/zensorleap/sensordesc/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		cli.Errorf(app.ErrWriter, "%v", err)
	}
}
