package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/psrsim/psrsim/internal/storage"
)

// Run loads a stored observation and renders it as a waterfall image.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.New(config.DBPath)
	defer store.Close()

	sess, err := store.Session(ctx, config.SessionID)
	if err != nil {
		return fmt.Errorf("loading session %d: %w", config.SessionID, err)
	}

	logger.Info("loaded session",
		slog.Int64("session", sess.ID),
		slog.String("telescope", sess.Telescope),
		slog.String("system", sess.System),
		slog.String("kind", sess.Kind),
		slog.Int("rows", sess.NumRows),
		slog.Int("samples", sess.NumSamples))

	data, err := store.Observation(ctx, config.SessionID)
	if err != nil {
		return fmt.Errorf("loading observation data: %w", err)
	}

	logger.Info("rendering waterfall",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
		))

	img, err := NewRenderer(config.Theme, config.MaxWidth).Render(sess, data)
	if err != nil {
		return fmt.Errorf("rendering waterfall: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
