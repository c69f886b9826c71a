package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zensorleap/sensordesc/sensordesc"
)

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	switch kind := c.Args().First(); kind {
	case "sensor":
		return printJSON(c.App.Writer, sensordesc.SensorTypeSchema())
	case "vehicle":
		return printJSON(c.App.Writer, sensordesc.VehicleSchema())
	default:
		return errors.Errorf("unknown schema %q, expected sensor or vehicle", kind)
	}
}
