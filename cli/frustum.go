package cli

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zensorleap/sensordesc/sensordesc"
	"github.com/zensorleap/sensordesc/spatialmath"
)

type frustumOutput struct {
	Name    string                                  `json:"name"`
	Corners [spatialmath.NumFrustumPoints]r3.Vector `json:"corners"`
}

// FrustumAction is the corresponding Action for 'frustum'.
func FrustumAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.Errorf("expected exactly one sensor type file, got %d arguments", c.Args().Len())
	}
	st, err := sensordesc.ReadSensorTypeFile(c.Args().First())
	if err != nil {
		return err
	}
	if reordered := st.ReorderedExtents(); len(reordered) > 0 {
		warningf(c.App.ErrWriter, "swapped min and max of %v; run sanitize to fix the file", reordered)
	}

	corners := st.Frustum().Points()
	if c.Bool(generalFlagJSON) {
		return printJSON(c.App.Writer, frustumOutput{Name: st.Name(), Corners: corners})
	}

	printf(c.App.Writer, "%s: azimuth %s, elevation %s, range %s",
		st.Name(), extentString(st.AzimuthExtent()), extentString(st.ElevationExtent()), extentString(st.RangeExtent()))
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Plane", "X", "Y", "Z"})
	for i, p := range corners {
		t.AppendRow(cornerRow(i, p))
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// CoverageAction is the corresponding Action for 'coverage'.
func CoverageAction(c *cli.Context) error {
	logger := loggerFromContext(c)
	catalog, err := sensordesc.LoadCatalog(c.Path(coverageFlagSensors), "", logger)
	if err != nil {
		return errors.Wrap(err, "cannot load sensor types")
	}
	vehicle, err := sensordesc.ReadVehicleFile(c.Path(coverageFlagVehicle))
	if err != nil {
		return err
	}
	mounted, err := sensordesc.Coverage(vehicle, catalog)
	if err != nil {
		return err
	}
	logger.Debugw("computed coverage", "vehicle", vehicle.Name(), "placements", len(mounted))

	if c.Bool(generalFlagJSON) {
		return printJSON(c.App.Writer, mounted)
	}

	t := table.NewWriter()
	t.SetTitle(vehicle.Name())
	t.AppendHeader(table.Row{"Placement", "Sensor type", "#", "Plane", "X", "Y", "Z"})
	for _, mf := range mounted {
		for i, p := range mf.Corners {
			t.AppendRow(append(table.Row{mf.Placement, mf.SensorType}, cornerRow(i, p)...))
		}
		t.AppendSeparator()
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

func cornerRow(i int, p r3.Vector) table.Row {
	plane := "near"
	if i >= spatialmath.NumFrustumPoints/2 {
		plane = "far"
	}
	return table.Row{i, plane, fmt.Sprintf("%.4f", p.X), fmt.Sprintf("%.4f", p.Y), fmt.Sprintf("%.4f", p.Z)}
}

func extentString(e spatialmath.Extent) string {
	return fmt.Sprintf("%g..%g", e.Min, e.Max)
}
