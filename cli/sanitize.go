package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zensorleap/sensordesc/sanitize"
)

// SanitizeAction is the corresponding Action for 'sanitize'.
func SanitizeAction(c *cli.Context) error {
	sensorFiles := c.StringSlice(sanitizeFlagSensor)
	vehicleFiles := c.StringSlice(sanitizeFlagVehicle)
	if len(sensorFiles) == 0 && len(vehicleFiles) == 0 {
		return errors.Errorf("nothing to sanitize: pass --%s or --%s", sanitizeFlagSensor, sanitizeFlagVehicle)
	}
	for _, sensorFile := range sensorFiles {
		for _, vehicleFile := range vehicleFiles {
			same, err := samePath(sensorFile, vehicleFile)
			if err != nil {
				return err
			}
			if same {
				return errors.Errorf("%q cannot be both a sensor type and a vehicle", sensorFile)
			}
		}
	}

	s := sanitize.NewSanitizer(sensorFiles, vehicleFiles, loggerFromContext(c))
	if !c.Bool(sanitizeFlagWatch) {
		return s.Run(c.Context)
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(c), os.Interrupt)
	defer stop()
	return s.Watch(ctx)
}

func contextOrBackground(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
