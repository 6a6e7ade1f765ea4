package noise

// Internal unit system: amplitudes are expressed in volts.
const (
	Volt      = 1.0
	MilliVolt = 1e-3 * Volt
)
