package srs

// Quality bounds for a graded recall. The UI maps labels like
// Again/Hard/Good/Easy/Perfect onto this range before calling in.
const (
	MinQuality = 0
	MaxQuality = 4
)

// CorrectThreshold is the lowest quality that still counts as a
// successful recall. Anything below it is a lapse.
const CorrectThreshold = 3

// Params holds the tunable constants of the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the floor for the ease factor. SM-2 fixes this
	// at 1.3; going lower makes intervals degenerate.
	MinEaseFactor float64

	// StartingEaseFactor is assigned to brand-new cards.
	StartingEaseFactor float64

	// MatureThresholdDays is the interval at which a card counts as mature.
	MatureThresholdDays int

	// NewCardsPerSession caps how many never-reviewed cards the queue
	// admits per selection, regardless of how many exist.
	NewCardsPerSession int
}

// DefaultParams returns the standard SM-2 defaults.
func DefaultParams() Params {
	return Params{
		MinEaseFactor:       1.3,
		StartingEaseFactor:  2.5,
		MatureThresholdDays: 21,
		NewCardsPerSession:  10,
	}
}

// Normalize fills zero values with defaults so a partially populated
// Params (e.g. from config) is always usable.
func (p Params) Normalize() Params {
	def := DefaultParams()
	if p.MinEaseFactor <= 0 {
		p.MinEaseFactor = def.MinEaseFactor
	}
	if p.StartingEaseFactor <= 0 {
		p.StartingEaseFactor = def.StartingEaseFactor
	}
	if p.MatureThresholdDays <= 0 {
		p.MatureThresholdDays = def.MatureThresholdDays
	}
	if p.NewCardsPerSession <= 0 {
		p.NewCardsPerSession = def.NewCardsPerSession
	}
	return p
}
