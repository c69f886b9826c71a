package sensordesc

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/zensorleap/sensordesc/logging"
)

// Catalog indexes the sensor types and vehicles found in a pair of directories.
type Catalog struct {
	sensorTypes map[string]*SensorType
	vehicles    map[string]*Vehicle
	logger      logging.Logger
}

// NewCatalog returns an empty catalog.
func NewCatalog(logger logging.Logger) *Catalog {
	return &Catalog{
		sensorTypes: map[string]*SensorType{},
		vehicles:    map[string]*Vehicle{},
		logger:      logger,
	}
}

// LoadCatalog reads every description in sensorDir and vehicleDir. An empty directory name is
// skipped. Files that fail to load are all reported in the returned error alongside the
// catalog of the files that did load.
func LoadCatalog(sensorDir, vehicleDir string, logger logging.Logger) (*Catalog, error) {
	c := NewCatalog(logger)
	var errs error
	if sensorDir != "" {
		files, err := JSONFilesInDirectory(sensorDir)
		errs = multierr.Combine(errs, err)
		for _, file := range files {
			st, err := ReadSensorTypeFile(file)
			if err != nil {
				errs = multierr.Combine(errs, err)
				continue
			}
			errs = multierr.Combine(errs, errors.Wrapf(c.AddSensorType(st), "sensor type file %q", file))
		}
	}
	if vehicleDir != "" {
		files, err := JSONFilesInDirectory(vehicleDir)
		errs = multierr.Combine(errs, err)
		for _, file := range files {
			v, err := ReadVehicleFile(file)
			if err != nil {
				errs = multierr.Combine(errs, err)
				continue
			}
			errs = multierr.Combine(errs, errors.Wrapf(c.AddVehicle(v), "vehicle file %q", file))
		}
	}
	return c, errs
}

// AddSensorType indexes st by name.
func (c *Catalog) AddSensorType(st *SensorType) error {
	if _, ok := c.sensorTypes[st.Name()]; ok {
		return errors.Errorf("duplicate sensor type %q", st.Name())
	}
	if reordered := st.ReorderedExtents(); len(reordered) > 0 {
		c.logger.Debugw("swapped min and max", "sensorType", st.Name(), "extents", reordered)
	}
	c.sensorTypes[st.Name()] = st
	return nil
}

// AddVehicle indexes v by name.
func (c *Catalog) AddVehicle(v *Vehicle) error {
	if _, ok := c.vehicles[v.Name()]; ok {
		return errors.Errorf("duplicate vehicle %q", v.Name())
	}
	c.vehicles[v.Name()] = v
	return nil
}

// SensorType returns the named sensor type.
func (c *Catalog) SensorType(name string) (*SensorType, bool) {
	st, ok := c.sensorTypes[name]
	return st, ok
}

// Vehicle returns the named vehicle.
func (c *Catalog) Vehicle(name string) (*Vehicle, bool) {
	v, ok := c.vehicles[name]
	return v, ok
}

// SensorTypeNames returns the names of all sensor types in sorted order.
func (c *Catalog) SensorTypeNames() []string {
	return sortedKeys(c.sensorTypes)
}

// VehicleNames returns the names of all vehicles in sorted order.
func (c *Catalog) VehicleNames() []string {
	return sortedKeys(c.vehicles)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
