package sensordesc

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/zensorleap/sensordesc/spatialmath"
)

// MountedFrustum is the view frustum of one placement expressed in the vehicle frame.
type MountedFrustum struct {
	Placement  string                                 `json:"placement"`
	SensorType string                                 `json:"sensorType"`
	Corners    [spatialmath.NumFrustumPoints]r3.Vector `json:"corners"`
}

// Coverage mounts the frustum of every placement of v, looking sensor types up in c. The result
// is sorted by placement name.
func Coverage(v *Vehicle, c *Catalog) ([]MountedFrustum, error) {
	names := v.PlacementNames()
	mounted := make([]MountedFrustum, 0, len(names))
	for _, name := range names {
		sp, _ := v.Placement(name)
		st, ok := c.SensorType(sp.SensorType())
		if !ok {
			return nil, errors.Errorf("placement %q of vehicle %q uses unknown sensor type %q", name, v.Name(), sp.SensorType())
		}
		mounted = append(mounted, MountedFrustum{
			Placement:  name,
			SensorType: st.Name(),
			Corners:    st.Frustum().Mounted(sp.Orientation(), sp.MountPoint()),
		})
	}
	return mounted, nil
}
