package storage

import (
	"database/sql"
	"time"
)

// SessionMeta describes an observation run at creation time.
type SessionMeta struct {
	Telescope   string  // telescope name, e.g. "GBT"
	System      string  // system name, e.g. "Lband_GUPPI"
	Mode        string  // observing mode, "search" or "fold"
	Noise       bool    // whether radiometer noise was injected
	Kind        string  // signal kind, "voltage" or "intensity"
	DType       string  // output representation, "float32" or "int8"
	NumRows     int     // polarizations or frequency channels
	NumSamples  int     // samples per row after resampling
	DtSeconds   float64 // effective sample interval in seconds
	FcentHz     float64 // receiver center frequency in Hz
	BandwidthHz float64 // receiver bandwidth in Hz
}

// Session is a stored observation session.
type Session struct {
	ID        int64
	CreatedAt time.Time
	SessionMeta
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner, sess *Session) error {
	var noise sql.NullBool
	err := r.Scan(&sess.ID, &sess.CreatedAt,
		&sess.Telescope, &sess.System, &sess.Mode, &noise,
		&sess.Kind, &sess.DType, &sess.NumRows, &sess.NumSamples,
		&sess.DtSeconds, &sess.FcentHz, &sess.BandwidthHz)
	if err != nil {
		return err
	}
	sess.Noise = noise.Valid && noise.Bool
	return nil
}
