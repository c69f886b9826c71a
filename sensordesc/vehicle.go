package sensordesc

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/zensorleap/sensordesc/spatialmath"
)

// SensorPlacementConfig is the on-disk layout of a sensor mounted on a vehicle.
type SensorPlacementConfig struct {
	Type        string     `json:"type" jsonschema:"description=name of the mounted sensor type"`
	MountPoint  [3]float64 `json:"mountPoint" jsonschema:"description=x y z position on the vehicle"`
	Orientation [3]float64 `json:"orientation" jsonschema:"description=yaw pitch roll in degrees"`
}

// VehicleConfig is the on-disk layout of a vehicle description.
type VehicleConfig struct {
	Name    string                           `json:"name" jsonschema:"description=unique name of the vehicle"`
	Sensors map[string]SensorPlacementConfig `json:"sensors" jsonschema:"description=mounted sensors by placement name"`
}

// SensorPlacement is a sensor type mounted at a point of a vehicle with a given orientation.
type SensorPlacement struct {
	name        string
	sensorType  string
	mountPoint  r3.Vector
	orientation [3]float64
}

// NewSensorPlacement builds a placement from its on-disk form.
func NewSensorPlacement(name string, cfg SensorPlacementConfig) *SensorPlacement {
	return &SensorPlacement{
		name:        name,
		sensorType:  cfg.Type,
		mountPoint:  r3.Vector{X: cfg.MountPoint[0], Y: cfg.MountPoint[1], Z: cfg.MountPoint[2]},
		orientation: cfg.Orientation,
	}
}

// Name returns the placement name.
func (sp *SensorPlacement) Name() string {
	return sp.name
}

// SensorType returns the name of the mounted sensor type.
func (sp *SensorPlacement) SensorType() string {
	return sp.sensorType
}

// MountPoint returns where the sensor sits in the vehicle frame.
func (sp *SensorPlacement) MountPoint() r3.Vector {
	return sp.mountPoint
}

// EulerAngles returns the orientation of the sensor.
func (sp *SensorPlacement) EulerAngles() spatialmath.EulerAngles {
	return spatialmath.EulerAnglesFromDegrees(sp.orientation[0], sp.orientation[1], sp.orientation[2])
}

// Orientation returns the orientation of the sensor as a quaternion.
func (sp *SensorPlacement) Orientation() spatialmath.Quaternion {
	return spatialmath.EulerToQuat(sp.EulerAngles())
}

// Config returns the on-disk form of the placement.
func (sp *SensorPlacement) Config() SensorPlacementConfig {
	return SensorPlacementConfig{
		Type:        sp.sensorType,
		MountPoint:  [3]float64{sp.mountPoint.X, sp.mountPoint.Y, sp.mountPoint.Z},
		Orientation: sp.orientation,
	}
}

// Vehicle is a named set of sensor placements.
type Vehicle struct {
	name       string
	placements map[string]*SensorPlacement
}

// NewVehicle returns an empty unnamed vehicle.
func NewVehicle() *Vehicle {
	return &Vehicle{placements: map[string]*SensorPlacement{}}
}

// NewVehicleFromConfig builds a vehicle from its on-disk form.
func NewVehicleFromConfig(cfg VehicleConfig) *Vehicle {
	v := &Vehicle{name: cfg.Name, placements: make(map[string]*SensorPlacement, len(cfg.Sensors))}
	for name, placement := range cfg.Sensors {
		v.placements[name] = NewSensorPlacement(name, placement)
	}
	return v
}

// ParseVehicle parses a JSON vehicle description.
func ParseVehicle(data []byte) (*Vehicle, error) {
	v := &Vehicle{}
	if err := v.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return v, nil
}

// Name returns the vehicle name.
func (v *Vehicle) Name() string {
	return v.name
}

// Placement returns the named placement.
func (v *Vehicle) Placement(name string) (*SensorPlacement, bool) {
	sp, ok := v.placements[name]
	return sp, ok
}

// PlacementNames returns the names of all placements in sorted order.
func (v *Vehicle) PlacementNames() []string {
	return sortedKeys(v.placements)
}

// Config returns the normalized on-disk form of the vehicle.
func (v *Vehicle) Config() VehicleConfig {
	cfg := VehicleConfig{Name: v.name, Sensors: make(map[string]SensorPlacementConfig, len(v.placements))}
	for name, sp := range v.placements {
		cfg.Sensors[name] = sp.Config()
	}
	return cfg
}

// Equal reports whether both vehicles have the same name and placements.
func (v *Vehicle) Equal(other *Vehicle) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.name != other.name || len(v.placements) != len(other.placements) {
		return false
	}
	for name, sp := range v.placements {
		otherSp, ok := other.placements[name]
		if !ok || *sp != *otherSp {
			return false
		}
	}
	return true
}

// MarshalJSON writes the normalized description.
func (v *Vehicle) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Config())
}

// ToJSON returns the normalized, indented description terminated by a newline.
func (v *Vehicle) ToJSON() ([]byte, error) {
	return indentedJSON(v.Config())
}

// UnmarshalJSON reads a vehicle description. A missing name is empty, missing sensors mean no
// placements, and a placement's missing mount point or orientation is all zeros.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "cannot parse vehicle")
	}
	if raw == nil {
		return errors.New("cannot parse vehicle: expected a JSON object")
	}

	cfg := VehicleConfig{Sensors: map[string]SensorPlacementConfig{}}
	var err error
	if cfg.Name, err = stringField(raw, "name", ""); err != nil {
		return err
	}

	if rawSensors, ok := raw["sensors"]; ok && rawSensors != nil {
		sensors, ok := rawSensors.(map[string]interface{})
		if !ok {
			return errors.Errorf("field %q must be an object of placements", "sensors")
		}
		for name, rawPlacement := range sensors {
			placement, err := parsePlacement(rawPlacement)
			if err != nil {
				return errors.Wrapf(err, "sensor placement %q", name)
			}
			cfg.Sensors[name] = placement
		}
	}

	*v = *NewVehicleFromConfig(cfg)
	return nil
}

func parsePlacement(rawPlacement interface{}) (SensorPlacementConfig, error) {
	var cfg SensorPlacementConfig
	fields, ok := rawPlacement.(map[string]interface{})
	if !ok {
		return cfg, errors.New("placement must be an object")
	}
	var err error
	if cfg.Type, err = stringField(fields, "type", ""); err != nil {
		return cfg, err
	}
	if cfg.MountPoint, err = tripleField(fields, "mountPoint"); err != nil {
		return cfg, err
	}
	if cfg.Orientation, err = tripleField(fields, "orientation"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func tripleField(raw map[string]interface{}, key string) ([3]float64, error) {
	var triple [3]float64
	v, ok := raw[key]
	if !ok || v == nil {
		return triple, nil
	}
	values, ok := v.([]interface{})
	if !ok || len(values) != len(triple) {
		return triple, errors.Errorf("field %q must be a list of 3 numbers", key)
	}
	for i, value := range values {
		f, err := toFloat(value, key)
		if err != nil {
			return triple, err
		}
		triple[i] = f
	}
	return triple, nil
}
