// Package cli contains the sensordesc command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	generalFlagDebug   = "debug"
	generalFlagJSON    = "json"
	generalFlagLogFile = "log-file"

	sanitizeFlagSensor  = "sensor"
	sanitizeFlagVehicle = "vehicle"
	sanitizeFlagWatch   = "watch"

	coverageFlagSensors = "sensors"
	coverageFlagVehicle = "vehicle"

	debugEnvVar = "SENSORDESC_DEBUG"
)

// newApp builds the app with fresh flags, since urfave/cli records parsed values on the flag
// structs themselves.
func newApp() *cli.App {
	return &cli.App{
		Name:            "sensordesc",
		Usage:           "describe what the range sensors mounted on a vehicle can see",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				EnvVars: []string{debugEnvVar},
				Usage:   "enable debug logging",
			},
			&cli.PathFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotating it as it grows",
			},
		},
		Before: setupLogger,
		After:  closeLogger,
		Commands: []*cli.Command{
			{
				Name:      "sanitize",
				Usage:     "write a normalized copy of sensor type and vehicle files next to each input",
				UsageText: "sensordesc sanitize [-s SENSOR_FILE]... [-v VEHICLE_FILE]... [--watch]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    sanitizeFlagSensor,
						Aliases: []string{"s"},
						Usage:   "sensor type `FILE` to sanitize (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:    sanitizeFlagVehicle,
						Aliases: []string{"v"},
						Usage:   "vehicle `FILE` to sanitize (repeatable)",
					},
					&cli.BoolFlag{
						Name:  sanitizeFlagWatch,
						Usage: "keep running and sanitize files again whenever they change",
					},
				},
				Action: SanitizeAction,
			},
			{
				Name:      "frustum",
				Usage:     "print the eight corners of a sensor type's view frustum",
				ArgsUsage: "SENSOR_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  generalFlagJSON,
						Usage: "print JSON instead of a table",
					},
				},
				Action: FrustumAction,
			},
			{
				Name:  "coverage",
				Usage: "print the view frustum corners of every sensor mounted on a vehicle, in the vehicle frame",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     coverageFlagSensors,
						Required: true,
						Usage:    "`DIR` holding the sensor type files",
					},
					&cli.PathFlag{
						Name:     coverageFlagVehicle,
						Required: true,
						Usage:    "vehicle `FILE`",
					},
					&cli.BoolFlag{
						Name:  generalFlagJSON,
						Usage: "print JSON instead of a table",
					},
				},
				Action: CoverageAction,
			},
			{
				Name:      "schema",
				Usage:     "print the JSON Schema of sensor type or vehicle files",
				ArgsUsage: "sensor|vehicle",
				Action:    SchemaAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
