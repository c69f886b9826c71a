// Package sensordesc reads, normalizes and writes the JSON descriptions of sensor types and of
// the vehicles they are mounted on.
package sensordesc

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/zensorleap/sensordesc/spatialmath"
)

// SensorTypeConfig is the on-disk layout of a sensor type description.
type SensorTypeConfig struct {
	Name         string  `json:"name" jsonschema:"description=unique name of the sensor type"`
	AzimuthMin   float64 `json:"azimuthMin" jsonschema:"description=minimum azimuth in degrees"`
	AzimuthMax   float64 `json:"azimuthMax" jsonschema:"description=maximum azimuth in degrees"`
	ElevationMin float64 `json:"elevationMin" jsonschema:"description=minimum elevation in degrees"`
	ElevationMax float64 `json:"elevationMax" jsonschema:"description=maximum elevation in degrees"`
	RangeMin     float64 `json:"rangeMin" jsonschema:"description=minimum detection range"`
	RangeMax     float64 `json:"rangeMax" jsonschema:"description=maximum detection range"`
}

// DefaultSensorTypeConfig holds the values used for fields missing from a description.
var DefaultSensorTypeConfig = SensorTypeConfig{
	Name:         "",
	AzimuthMin:   -15,
	AzimuthMax:   15,
	ElevationMin: -10,
	ElevationMax: 10,
	RangeMin:     2,
	RangeMax:     70,
}

// SensorType describes the angular and radial limits of a kind of sensor. Every extent held by a
// SensorType has Min <= Max.
type SensorType struct {
	name      string
	azimuth   spatialmath.Extent
	elevation spatialmath.Extent
	rng       spatialmath.Extent

	reordered []string
}

// NewSensorType returns a sensor type holding the default values.
func NewSensorType() *SensorType {
	return NewSensorTypeFromConfig(DefaultSensorTypeConfig)
}

// NewSensorTypeFromConfig builds a sensor type from cfg, swapping any min/max pair given in the
// wrong order.
func NewSensorTypeFromConfig(cfg SensorTypeConfig) *SensorType {
	st := &SensorType{name: cfg.Name}
	st.azimuth = st.sortedExtent("azimuth", cfg.AzimuthMin, cfg.AzimuthMax)
	st.elevation = st.sortedExtent("elevation", cfg.ElevationMin, cfg.ElevationMax)
	st.rng = st.sortedExtent("range", cfg.RangeMin, cfg.RangeMax)
	return st
}

// ParseSensorType parses a JSON sensor type description. Missing fields take their default value
// and numeric fields accept anything that converts to a float, such as "12.5".
func ParseSensorType(data []byte) (*SensorType, error) {
	st := &SensorType{}
	if err := st.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return st, nil
}

// Name returns the sensor type name.
func (st *SensorType) Name() string {
	return st.name
}

// AzimuthExtent returns the azimuth limits in degrees.
func (st *SensorType) AzimuthExtent() spatialmath.Extent {
	return st.azimuth
}

// ElevationExtent returns the elevation limits in degrees.
func (st *SensorType) ElevationExtent() spatialmath.Extent {
	return st.elevation
}

// RangeExtent returns the range limits.
func (st *SensorType) RangeExtent() spatialmath.Extent {
	return st.rng
}

// ReorderedExtents names the extents whose min and max were swapped when the sensor type was
// loaded.
func (st *SensorType) ReorderedExtents() []string {
	return append([]string(nil), st.reordered...)
}

// Frustum returns the view frustum covered by this sensor type.
func (st *SensorType) Frustum() *spatialmath.ViewFrustum {
	return spatialmath.NewViewFrustum(st.azimuth, st.elevation, st.rng)
}

// Config returns the normalized on-disk form of the sensor type.
func (st *SensorType) Config() SensorTypeConfig {
	return SensorTypeConfig{
		Name:         st.name,
		AzimuthMin:   st.azimuth.Min,
		AzimuthMax:   st.azimuth.Max,
		ElevationMin: st.elevation.Min,
		ElevationMax: st.elevation.Max,
		RangeMin:     st.rng.Min,
		RangeMax:     st.rng.Max,
	}
}

// Equal reports whether both sensor types have the same name and extents.
func (st *SensorType) Equal(other *SensorType) bool {
	if st == nil || other == nil {
		return st == other
	}
	return st.Config() == other.Config()
}

// MarshalJSON writes the normalized description.
func (st *SensorType) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.Config())
}

// UnmarshalJSON reads a description, applying defaults and coercing numeric fields.
func (st *SensorType) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "cannot parse sensor type")
	}
	if raw == nil {
		return errors.New("cannot parse sensor type: expected a JSON object")
	}

	cfg := DefaultSensorTypeConfig
	var err error
	if cfg.Name, err = stringField(raw, "name", cfg.Name); err != nil {
		return err
	}
	fields := []struct {
		key string
		dst *float64
	}{
		{"azimuthMin", &cfg.AzimuthMin},
		{"azimuthMax", &cfg.AzimuthMax},
		{"elevationMin", &cfg.ElevationMin},
		{"elevationMax", &cfg.ElevationMax},
		{"rangeMin", &cfg.RangeMin},
		{"rangeMax", &cfg.RangeMax},
	}
	for _, f := range fields {
		if *f.dst, err = floatField(raw, f.key, *f.dst); err != nil {
			return err
		}
	}

	*st = *NewSensorTypeFromConfig(cfg)
	return nil
}

// ToJSON returns the normalized, indented description terminated by a newline.
func (st *SensorType) ToJSON() ([]byte, error) {
	return indentedJSON(st.Config())
}

func (st *SensorType) sortedExtent(name string, a, b float64) spatialmath.Extent {
	if a > b {
		st.reordered = append(st.reordered, name)
		return spatialmath.Extent{Min: b, Max: a}
	}
	return spatialmath.Extent{Min: a, Max: b}
}

func indentedJSON(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func stringField(raw map[string]interface{}, key, def string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "field %q must be a string", key)
	}
	return s, nil
}

func floatField(raw map[string]interface{}, key string, def float64) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return def, nil
	}
	return toFloat(v, key)
}

func toFloat(v interface{}, what string) (float64, error) {
	if v == nil {
		return 0, errors.Errorf("field %q must be a number, got null", what)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Wrapf(err, "field %q must be a number", what)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("field %q must be a finite number, got %v", what, v)
	}
	return f, nil
}
