package telescope

import "errors"

var (
	// ErrUnknownSystem is returned when an observation names a system
	// that was never registered on the telescope.
	ErrUnknownSystem = errors.New("unknown system")

	// ErrSampleRate is returned when the signal's native sample rate is
	// below the telescope's required rate. No decimation or rebinning
	// can reconcile the two; the simulator does not up-sample.
	ErrSampleRate = errors.New("signal sampling rate below telescope sampling rate")

	// ErrMissingTsys is returned when noise injection is requested on a
	// telescope constructed without a system temperature. Falling back
	// to the receiver temperature is not implemented.
	ErrMissingTsys = errors.New("telescope has no system temperature")
)
