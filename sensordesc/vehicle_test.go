package sensordesc

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"github.com/zensorleap/sensordesc/spatialmath"
)

const shuttleJSON = `{
	"name": "shuttle",
	"sensors": {
		"left": {"type": "cornerLidar", "mountPoint": [-1, 0, 1], "orientation": [0, 90, 0]},
		"front": {"type": "frontRadar", "mountPoint": [0, 0, 2.5]}
	}
}`

func TestVehicleParse(t *testing.T) {
	v, err := ParseVehicle([]byte(shuttleJSON))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Name(), test.ShouldEqual, "shuttle")
	test.That(t, v.PlacementNames(), test.ShouldResemble, []string{"front", "left"})

	front, ok := v.Placement("front")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, front.Name(), test.ShouldEqual, "front")
	test.That(t, front.SensorType(), test.ShouldEqual, "frontRadar")
	test.That(t, front.MountPoint(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 2.5})
	test.That(t, front.Orientation(), test.ShouldResemble, spatialmath.IdentityQuaternion())

	left, ok := v.Placement("left")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, left.EulerAngles().Pitch, test.ShouldAlmostEqual, spatialmath.DegToRad(90))
	// pitch is about -Y, so the sensor's forward axis ends up pointing along +X
	forward := spatialmath.RotateVector(left.Orientation(), r3.Vector{Z: 1})
	test.That(t, spatialmath.VecsMatchWithin(forward, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)

	_, ok = v.Placement("rear")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestVehicleDefaults(t *testing.T) {
	v, err := ParseVehicle([]byte(`{}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.Equal(NewVehicle()), test.ShouldBeTrue)
	test.That(t, v.PlacementNames(), test.ShouldBeEmpty)

	v, err = ParseVehicle([]byte(`{"name": "bare", "sensors": {"roof": {}}}`))
	test.That(t, err, test.ShouldBeNil)
	roof, ok := v.Placement("roof")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, roof.Config(), test.ShouldResemble, SensorPlacementConfig{})
}

func TestVehicleParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		msg   string
	}{
		{"short mount point", `{"sensors": {"a": {"mountPoint": [1, 2]}}}`, "mountPoint"},
		{"long orientation", `{"sensors": {"a": {"orientation": [1, 2, 3, 4]}}}`, "orientation"},
		{"null entry", `{"sensors": {"a": {"orientation": [1, null, 3]}}}`, "orientation"},
		{"text entry", `{"sensors": {"a": {"mountPoint": [1, "up", 3]}}}`, "mountPoint"},
		{"infinite entry", `{"sensors": {"a": {"mountPoint": [1, "Inf", 3]}}}`, "mountPoint"},
		{"sensors not an object", `{"sensors": [1]}`, "sensors"},
		{"placement not an object", `{"sensors": {"a": 3}}`, `"a"`},
		{"not an object", `null`, "vehicle"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseVehicle([]byte(tc.input))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
		})
	}
}

func TestVehicleToJSON(t *testing.T) {
	v, err := ParseVehicle([]byte(shuttleJSON))
	test.That(t, err, test.ShouldBeNil)

	out, err := v.ToJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `{
    "name": "shuttle",
    "sensors": {
        "front": {
            "type": "frontRadar",
            "mountPoint": [
                0,
                0,
                2.5
            ],
            "orientation": [
                0,
                0,
                0
            ]
        },
        "left": {
            "type": "cornerLidar",
            "mountPoint": [
                -1,
                0,
                1
            ],
            "orientation": [
                0,
                90,
                0
            ]
        }
    }
}
`)

	reparsed, err := ParseVehicle(out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reparsed.Equal(v), test.ShouldBeTrue)
	if diff := cmp.Diff(v.Config(), reparsed.Config()); diff != "" {
		t.Errorf("config changed on round trip (-want +got):\n%s", diff)
	}

	moved := NewVehicleFromConfig(v.Config())
	test.That(t, moved.Equal(v), test.ShouldBeTrue)
	cfg := v.Config()
	cfg.Sensors["left"] = SensorPlacementConfig{Type: "cornerLidar"}
	test.That(t, NewVehicleFromConfig(cfg).Equal(v), test.ShouldBeFalse)
}
