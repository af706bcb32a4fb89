package chain

// BlockParams carries the host-smoothed parameter curves for one audio
// block. Every curve holds one value per oversampled sample, i.e.
// blockLen << Factor values; the host writes them before the block is
// processed and the chain only reads them.
type BlockParams struct {
	// Gain is the linear input gain curve.
	Gain []float64
	// Drive is the shaper drive curve (pregain exponent, 10^(2*drive)).
	Drive []float64

	// LowGainDB, MidGainDB and HighGainDB are the EQ band gain curves in dB.
	LowGainDB  []float64
	MidGainDB  []float64
	HighGainDB []float64

	// Factor is the oversampling factor 0..4 (multiplier 2^Factor) for
	// this block.
	Factor int

	// PreEQ places the EQ before the shaper when true, after the DC
	// blocker when false. Exactly one EQ pass runs either way.
	PreEQ bool
}

// UpsampledLen returns the number of oversampled samples, and therefore the
// required curve length, for a block of blockLen samples at factor.
func UpsampledLen(blockLen, factor int) int {
	return blockLen << factor
}

// FillConstant allocates a full set of constant curves for a block. Hosts
// smooth per sample and should fill curves themselves; this is a setup
// convenience for tools and tests.
func FillConstant(blockLen, factor int, gain, drive, lowDB, midDB, highDB float64) *BlockParams {
	upLen := UpsampledLen(blockLen, factor)

	p := &BlockParams{
		Gain:       make([]float64, upLen),
		Drive:      make([]float64, upLen),
		LowGainDB:  make([]float64, upLen),
		MidGainDB:  make([]float64, upLen),
		HighGainDB: make([]float64, upLen),
		Factor:     factor,
	}

	for i := range upLen {
		p.Gain[i] = gain
		p.Drive[i] = drive
		p.LowGainDB[i] = lowDB
		p.MidGainDB[i] = midDB
		p.HighGainDB[i] = highDB
	}

	return p
}
