package sanitize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/multierr"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/zensorleap/sensordesc/logging"
	"github.com/zensorleap/sensordesc/sensordesc"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.That(t, os.WriteFile(path, []byte(content), 0o600), test.ShouldBeNil)
	return path
}

func readFile(tb testing.TB, path string) string {
	tb.Helper()
	//nolint:gosec
	data, err := os.ReadFile(path)
	test.That(tb, err, test.ShouldBeNil)
	return string(data)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	radar := writeFile(t, dir, "radar.json", `{"name": "radar", "azimuthMin": 20, "azimuthMax": "-20"}`)
	empty := writeFile(t, dir, "empty.json", `{}`)
	truck := writeFile(t, dir, "truck.json", `{"name": "truck", "sensors": {"nose": {"type": "radar"}}}`)

	logger, logs := logging.NewObservedTestLogger(t)
	s := NewSanitizer([]string{radar, empty}, []string{truck}, logger)
	test.That(t, s.Run(context.Background()), test.ShouldBeNil)

	cleaned := readFile(t, sensordesc.CleanedFileName(radar))
	st, err := sensordesc.ParseSensorType([]byte(cleaned))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, st.AzimuthExtent().Min, test.ShouldEqual, -20.0)
	test.That(t, st.AzimuthExtent().Max, test.ShouldEqual, 20.0)
	expected, err := st.ToJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cleaned, test.ShouldEqual, string(expected))

	defaults, err := sensordesc.NewSensorType().ToJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, readFile(t, sensordesc.CleanedFileName(empty)), test.ShouldEqual, string(defaults))

	v, err := sensordesc.ReadVehicleFile(sensordesc.CleanedFileName(truck))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v.PlacementNames(), test.ShouldResemble, []string{"nose"})

	test.That(t, logs.FilterMessage("writing to "+sensordesc.CleanedFileName(radar)).Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("writing to "+sensordesc.CleanedFileName(truck)).Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("swapped min and max").Len(), test.ShouldEqual, 1)

	t.Run("sanitizing is idempotent", func(t *testing.T) {
		again := NewSanitizer([]string{sensordesc.CleanedFileName(radar)}, nil, logger)
		test.That(t, again.Run(context.Background()), test.ShouldBeNil)
		twice := readFile(t, sensordesc.CleanedFileName(sensordesc.CleanedFileName(radar)))
		test.That(t, twice, test.ShouldEqual, cleaned)
	})
}

func TestRunKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"rangeMin": null}`)
	good := writeFile(t, dir, "good.json", `{"name": "good"}`)
	badVehicle := writeFile(t, dir, "bad_vehicle.json", `{"sensors": {"a": {"mountPoint": [1]}}}`)
	missing := filepath.Join(dir, "missing.json")

	s := NewSanitizer([]string{bad, missing, good}, []string{badVehicle}, logging.NewTestLogger(t))
	err := s.Run(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 3)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad.json")
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing.json")
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad_vehicle.json")

	_, err = os.Stat(sensordesc.CleanedFileName(good))
	test.That(t, err, test.ShouldBeNil)
	_, err = os.Stat(sensordesc.CleanedFileName(bad))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewSanitizer([]string{good}, nil, logging.NewTestLogger(t)).Run(ctx)
		test.That(t, err, test.ShouldBeError, context.Canceled)
	})
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"name": "a"}`)
	b := writeFile(t, dir, "b.json", `{"name": "b", "rangeMax": "x"}`)
	car := writeFile(t, dir, "car.json", `{"name": "car"}`)

	s := NewSanitizer([]string{a, b}, []string{car, filepath.Join(dir, "nope.json")}, logging.NewTestLogger(t))
	sensorTypes, err := s.LoadSensorFiles()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "rangeMax")
	test.That(t, sensorTypes, test.ShouldHaveLength, 1)
	test.That(t, sensorTypes[0].Name(), test.ShouldEqual, "a")

	vehicles, err := s.LoadVehicleFiles()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "nope.json")
	test.That(t, vehicles, test.ShouldHaveLength, 1)
	test.That(t, vehicles[0].Name(), test.ShouldEqual, "car")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	radar := writeFile(t, dir, "radar.json", `{"name": "radar"}`)
	cleaned := sensordesc.CleanedFileName(radar)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := NewSanitizer([]string{radar}, nil, logging.NewTestLogger(t))
	go func() {
		done <- s.Watch(ctx)
	}()

	// the first pass runs before any change is made
	testutils.WaitForAssertionWithSleep(t, 50*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, readFile(tb, cleaned), test.ShouldContainSubstring, `"rangeMax": 70`)
	})

	writeFile(t, dir, "radar.json", `{"name": "radar", "rangeMax": 9}`)
	testutils.WaitForAssertionWithSleep(t, 50*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, readFile(tb, cleaned), test.ShouldContainSubstring, `"rangeMax": 9`)
	})

	// unrelated files in the same directory are left alone, even once a later change to a
	// watched file has been handled and the debounce window has passed
	other := writeFile(t, dir, "other.json", `{"name": "other"}`)
	writeFile(t, dir, "radar.json", `{"name": "radar", "rangeMax": 5}`)
	testutils.WaitForAssertionWithSleep(t, 50*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, readFile(tb, cleaned), test.ShouldContainSubstring, `"rangeMax": 5`)
	})
	time.Sleep(3 * s.WatchDebounce)

	cancel()
	test.That(t, <-done, test.ShouldBeNil)
	_, err := os.Stat(sensordesc.CleanedFileName(other))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}
