// Package sanitize rewrites sensor type and vehicle descriptions into their normalized form next
// to the original files.
package sanitize

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/zensorleap/sensordesc/logging"
	"github.com/zensorleap/sensordesc/sensordesc"
)

// DefaultWatchDebounce is how long Watch waits for a file to stop changing before sanitizing it.
const DefaultWatchDebounce = 100 * time.Millisecond

type fileKind int

const (
	sensorTypeFile fileKind = iota
	vehicleFile
)

func (k fileKind) String() string {
	if k == vehicleFile {
		return "vehicle"
	}
	return "sensor type"
}

// A Sanitizer normalizes a fixed list of sensor type and vehicle files. Each file's normalized
// copy is written to sensordesc.CleanedFileName of its path.
type Sanitizer struct {
	SensorFiles  []string
	VehicleFiles []string
	// WatchDebounce groups the bursts of events a single save produces.
	WatchDebounce time.Duration

	logger logging.Logger
}

// NewSanitizer returns a Sanitizer for the given files.
func NewSanitizer(sensorFiles, vehicleFiles []string, logger logging.Logger) *Sanitizer {
	return &Sanitizer{
		SensorFiles:   sensorFiles,
		VehicleFiles:  vehicleFiles,
		WatchDebounce: DefaultWatchDebounce,
		logger:        logger,
	}
}

// LoadSensorFiles parses every sensor type file. All failures are returned together.
func (s *Sanitizer) LoadSensorFiles() ([]*sensordesc.SensorType, error) {
	var (
		sensorTypes []*sensordesc.SensorType
		errs        error
	)
	for _, file := range s.SensorFiles {
		st, err := sensordesc.ReadSensorTypeFile(file)
		if err != nil {
			errs = multierr.Combine(errs, err)
			continue
		}
		sensorTypes = append(sensorTypes, st)
	}
	return sensorTypes, errs
}

// LoadVehicleFiles parses every vehicle file. All failures are returned together.
func (s *Sanitizer) LoadVehicleFiles() ([]*sensordesc.Vehicle, error) {
	var (
		vehicles []*sensordesc.Vehicle
		errs     error
	)
	for _, file := range s.VehicleFiles {
		v, err := sensordesc.ReadVehicleFile(file)
		if err != nil {
			errs = multierr.Combine(errs, err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, errs
}

// Run writes the normalized copy of every file. A file that cannot be sanitized does not stop
// the others; all failures are returned together.
func (s *Sanitizer) Run(ctx context.Context) error {
	var errs error
	for _, file := range s.SensorFiles {
		if err := ctx.Err(); err != nil {
			return multierr.Combine(errs, err)
		}
		errs = multierr.Combine(errs, s.sanitizeFile(file, sensorTypeFile))
	}
	for _, file := range s.VehicleFiles {
		if err := ctx.Err(); err != nil {
			return multierr.Combine(errs, err)
		}
		errs = multierr.Combine(errs, s.sanitizeFile(file, vehicleFile))
	}
	return errs
}

func (s *Sanitizer) sanitizeFile(file string, kind fileKind) error {
	var (
		out []byte
		err error
	)
	switch kind {
	case sensorTypeFile:
		var st *sensordesc.SensorType
		if st, err = sensordesc.ReadSensorTypeFile(file); err != nil {
			return err
		}
		if reordered := st.ReorderedExtents(); len(reordered) > 0 {
			s.logger.Debugw("swapped min and max", "file", file, "extents", reordered)
		}
		out, err = st.ToJSON()
	case vehicleFile:
		var v *sensordesc.Vehicle
		if v, err = sensordesc.ReadVehicleFile(file); err != nil {
			return err
		}
		out, err = v.ToJSON()
	}
	if err != nil {
		return errors.Wrapf(err, "cannot encode %s file %q", kind, file)
	}

	cleaned := sensordesc.CleanedFileName(file)
	s.logger.Infof("writing to %s", cleaned)
	return sensordesc.WriteJSONFile(cleaned, out)
}

// Watch sanitizes every file once and then again each time one of them is written or
// re-created, until ctx is done. Failures while watching are logged rather than returned.
func (s *Sanitizer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cannot create file watcher")
	}
	defer utils.UncheckedErrorFunc(watcher.Close)

	// directories are watched rather than files so that editors replacing a file are noticed
	watched := map[string]fileKind{}
	dirs := map[string]struct{}{}
	track := func(files []string, kind fileKind) error {
		for _, file := range files {
			abs, err := filepath.Abs(file)
			if err != nil {
				return errors.Wrapf(err, "cannot resolve %q", file)
			}
			watched[abs] = kind
			dir := filepath.Dir(abs)
			if _, ok := dirs[dir]; ok {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return errors.Wrapf(err, "cannot watch %q", dir)
			}
			dirs[dir] = struct{}{}
		}
		return nil
	}
	if err := track(s.SensorFiles, sensorTypeFile); err != nil {
		return err
	}
	if err := track(s.VehicleFiles, vehicleFile); err != nil {
		return err
	}

	if err := s.Run(ctx); err != nil {
		s.logger.Errorw("initial sanitize failed", "error", err)
	}
	s.logger.Infow("watching for changes", "files", len(watched))

	// debounced runs happen on timer goroutines; stopped keeps them from outliving Watch
	var (
		mu      sync.Mutex
		stopped bool
	)
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()
	debounced := map[string]func(func()){}
	for file := range watched {
		debounced[file] = debounce.New(s.WatchDebounce)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if sensordesc.IsCleanedFile(event.Name) || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			kind, ok := watched[event.Name]
			if !ok {
				continue
			}
			file := event.Name
			s.logger.Debugw("file changed", "file", file, "op", event.Op.String())
			debounced[file](func() {
				mu.Lock()
				defer mu.Unlock()
				if stopped {
					return
				}
				if err := s.sanitizeFile(file, kind); err != nil {
					s.logger.Errorw("cannot sanitize", "file", file, "error", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warnw("file watcher error", "error", err)
		}
	}
}
