package detector

import (
	"context"
	"fmt"
	"time"

	"poelauncher/pkg/config"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
)

// Stage names as they appear in reports and logs
const (
	StageRegistry = "registry"
	StageVolumes  = "volumes"
	StageLibrary  = "library"
)

// RegistrySource is the first detection stage
type RegistrySource interface {
	Scan(ctx context.Context) (Result, error)
}

// VolumeSource is the second stage; it only looks for the pending keys
type VolumeSource interface {
	Scan(ctx context.Context, pending []Key) (Result, error)
}

// LibrarySource is the third stage, run from a known Steam client path
type LibrarySource interface {
	Scan(ctx context.Context, clientPath string) (Result, error)
}

// Detector runs the detection stages in a fixed order and applies their
// findings to a config. Passes on one Detector never overlap.
type Detector struct {
	registry RegistrySource
	volumes  VolumeSource
	library  LibrarySource
	exists   func(path string) bool
	logger   *log.Logger
	timeout  time.Duration
	sem      *semaphore.Weighted
}

// Option configures a Detector
type Option func(*Detector)

// WithRegistry replaces the registry stage
func WithRegistry(src RegistrySource) Option {
	return func(d *Detector) { d.registry = src }
}

// WithVolumes replaces the volume stage
func WithVolumes(src VolumeSource) Option {
	return func(d *Detector) { d.volumes = src }
}

// WithLibrary replaces the Steam library stage
func WithLibrary(src LibrarySource) Option {
	return func(d *Detector) { d.library = src }
}

// WithFileCheck replaces the existence check used to validate companions
func WithFileCheck(exists func(path string) bool) Option {
	return func(d *Detector) { d.exists = exists }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(d *Detector) { d.logger = logger }
}

// WithTimeout bounds a pass. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Detector) { d.timeout = timeout }
}

// New creates a Detector wired to the host registry, volumes and filesystem
func New(opts ...Option) *Detector {
	d := &Detector{
		exists:  config.FileExists,
		logger:  log.Default(),
		timeout: config.DefaultDetectionTimeout,
		sem:     semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(d)
	}

	fsr := NewFSReader()
	if d.registry == nil {
		d.registry = NewRegistryScanner(DefaultStore(), fsr, d.logger)
	}
	if d.volumes == nil {
		d.volumes = NewVolumeScanner(DefaultVolumeLister(), fsr, d.logger, "")
	}
	if d.library == nil {
		d.library = NewLibraryScanner(fsr, d.logger)
	}
	return d
}

// Scan runs one detection pass without touching any config. Registry
// results come first; the volume stage only looks for what is still
// missing; the library stage runs whenever a Steam client path is known.
// Every value is normalized. Failing stages are recorded in the report and
// contribute nothing.
func (d *Detector) Scan(ctx context.Context, hints Hints) Report {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		d.logger.Warn("detection not started", "error", err)
		return Report{
			Found:  Result{},
			Stages: []StageOutcome{{Stage: "acquire", Err: err}},
		}
	}
	defer d.sem.Release(1)

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	report := Report{Found: Result{}}
	record := func(out StageOutcome) {
		report.Stages = append(report.Stages, out)
		report.Found.Merge(out.Found)
	}

	record(d.runStage(StageRegistry, func() (Result, error) {
		return d.registry.Scan(ctx)
	}))

	if pending := report.Found.Pending(); len(pending) > 0 {
		record(d.runStage(StageVolumes, func() (Result, error) {
			return d.volumes.Scan(ctx, pending)
		}))
	} else {
		record(StageOutcome{Stage: StageVolumes, Skipped: true})
	}

	clientPath := report.Found[KeySteam]
	if clientPath == "" {
		clientPath = Normalize(hints.SteamPath)
	}
	if clientPath != "" {
		record(d.runStage(StageLibrary, func() (Result, error) {
			return d.library.Scan(ctx, clientPath)
		}))
	} else {
		record(StageOutcome{Stage: StageLibrary, Skipped: true})
	}

	d.logger.Info("detection finished", "found", report.Count(), "failed_stages", len(report.Failed()))
	return report
}

// runStage calls fn, turning errors and panics into a failed outcome and
// normalizing every path it returns.
func (d *Detector) runStage(name string, fn func() (Result, error)) (out StageOutcome) {
	out.Stage = name
	defer func() {
		if r := recover(); r != nil {
			out = StageOutcome{Stage: name, Err: fmt.Errorf("stage %s panicked: %v", name, r)}
		}
		if out.Err != nil {
			d.logger.Warn("detection stage failed", "stage", name, "error", out.Err)
		}
	}()

	found, err := fn()
	if err != nil {
		out.Err = fmt.Errorf("stage %s: %w", name, err)
		return out
	}

	out.Found = Result{}
	for k, v := range found {
		out.Found.SetIfAbsent(k, Normalize(v))
	}
	return out
}

// Commit applies found to cfg under the given policy and refreshes the
// companion eligibility. It returns the keys whose config value changed.
func (d *Detector) Commit(cfg *config.Config, found Result, force bool) []Key {
	changed := Apply(cfg, found, force)
	cfg.ValidateCompanions(d.exists)
	return changed
}

// Detect runs a pass seeded from cfg and commits its findings. With force
// unset only empty fields are filled; with force set every finding
// overwrites the configured value.
func (d *Detector) Detect(ctx context.Context, cfg *config.Config, force bool) Report {
	report := d.Scan(ctx, HintsFrom(cfg))
	report.Applied = d.Commit(cfg, report.Found, force)
	return report
}
