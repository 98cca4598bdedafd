package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/rand"

	"github.com/psrsim/psrsim/internal/pulse"
	"github.com/psrsim/psrsim/internal/signal"
	"github.com/psrsim/psrsim/internal/storage"
	"github.com/psrsim/psrsim/internal/telescope"
	"github.com/psrsim/psrsim/internal/units"
)

const storageDir = "data"

// Run executes one simulated observation: synthesize the pulsar signal,
// observe it with the configured telescope system and store the result.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	store, dbPath, err := createStorage(&config.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	defer store.Close()

	tel := config.BuildTelescope()
	desc, err := config.BuildDescriptor()
	if err != nil {
		return fmt.Errorf("building signal descriptor: %w", err)
	}

	sys, err := tel.System(config.Observation.System)
	if err != nil {
		return err
	}

	sig, err := synthesize(config, desc)
	if err != nil {
		return fmt.Errorf("synthesizing signal: %w", err)
	}

	plan, err := tel.SamplePlan(desc, config.Observation.System)
	if err != nil {
		return err
	}

	logger.Info("observing",
		slog.String("telescope", tel.Name()),
		slog.String("system", config.Observation.System),
		slog.String("mode", config.Observation.Mode),
		slog.Bool("noise", config.Observation.Noise),
		slog.Group("plan",
			slog.String("strategy", plan.Strategy.String()),
			slog.Int("factor", plan.Factor),
			slog.Int("samples", plan.NewNt),
			slog.String("dt", fmt.Sprintf("%gs", plan.Dt.Seconds())),
		))

	var options []telescope.ObserveOption
	if config.Pulsar.Seed != 0 {
		options = append(options, telescope.WithRand(rand.NewSource(config.Pulsar.Seed)))
	}

	out, err := tel.Observe(sig, config.Observation.System,
		telescope.Mode(config.Observation.Mode), config.Observation.Noise, options...)
	if err != nil {
		return fmt.Errorf("observation failed: %w", err)
	}

	sessionID, err := store.CreateSession(ctx, storage.SessionMeta{
		Telescope:   tel.Name(),
		System:      config.Observation.System,
		Mode:        config.Observation.Mode,
		Noise:       config.Observation.Noise,
		Kind:        desc.Kind.String(),
		DType:       desc.DType.String(),
		NumRows:     desc.Rows(),
		NumSamples:  plan.NewNt,
		DtSeconds:   plan.Dt.Seconds(),
		FcentHz:     sys.Receiver.Fcent.Hertz(),
		BandwidthHz: sys.Receiver.Bandwidth.Hertz(),
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if err = store.StoreObservation(ctx, sessionID, out); err != nil {
		return fmt.Errorf("storing observation: %w", err)
	}

	logger.Info("observation stored",
		slog.Int64("session", sessionID),
		slog.String("database", dbPath),
		slog.Int("rows", len(out)),
		slog.Int("samples", plan.NewNt),
		slog.String("size", humanize.Bytes(uint64(len(out)*plan.NewNt*8))))

	return nil
}

func synthesize(config *Config, desc signal.Descriptor) (*signal.Signal, error) {
	var options []pulse.Option
	if config.Pulsar.Width > 0 {
		options = append(options, pulse.WithWidth(config.Pulsar.Width))
	}
	if config.Pulsar.Amplitude > 0 {
		options = append(options, pulse.WithAmplitude(config.Pulsar.Amplitude))
	}
	if config.Pulsar.Baseline > 0 {
		options = append(options, pulse.WithBaseline(config.Pulsar.Baseline))
	}
	if config.Pulsar.Seed != 0 {
		options = append(options, pulse.WithRand(rand.NewSource(config.Pulsar.Seed)))
	}

	gen := pulse.New(units.Milliseconds(config.Pulsar.Period), options...)
	if desc.Kind == signal.Voltage {
		return gen.Voltage(desc)
	}
	return gen.Intensity(desc)
}

func createStorage(config *StorageConfig) (*storage.Store, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	var dbPath string
	if config.DataDirectory != "" {
		dbPath = filepath.Join(wd, config.DataDirectory)
	} else {
		dbPath = filepath.Join(wd, storageDir)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("storage directory '%s' does not exist: %w", dbPath, err)
		}
		return nil, "", fmt.Errorf("checking storage directory '%s': %w", dbPath, err)
	}
	if !stat.IsDir() {
		return nil, "", fmt.Errorf("invalid storage directory '%s'", dbPath)
	}

	dbPath = filepath.Join(dbPath, fmt.Sprintf("obs_session_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	return storage.New(dbPath), dbPath, nil
}
