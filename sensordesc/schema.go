package sensordesc

import (
	"github.com/invopop/jsonschema"
)

func reflectSchema(v interface{}) *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	return r.Reflect(v)
}

// SensorTypeSchema returns the JSON Schema of a sensor type description.
func SensorTypeSchema() *jsonschema.Schema {
	s := reflectSchema(&SensorTypeConfig{})
	s.Title = "Sensor type"
	return s
}

// VehicleSchema returns the JSON Schema of a vehicle description.
func VehicleSchema() *jsonschema.Schema {
	s := reflectSchema(&VehicleConfig{})
	s.Title = "Vehicle"
	return s
}
