package oscillator

import (
	"math"

	"github.com/glotsynth/glotsynth/dsp"
	"github.com/glotsynth/glotsynth/types"
)

// Table types and normalization methods for TableConfig.
const (
	TableDerivative = "derivative"
	TableFlow       = "flow"

	NormalizeConstantPower = "constant_power"
	NormalizePeak          = "peak"
	NormalizeNone          = "none"
)

// TableConfig configures a glottal-flow table bank.
type TableConfig struct {
	TableSize       int     // number of prototype waveforms
	TableLength     int     // samples per prototype
	TableType       string  // TableDerivative or TableFlow
	NormalizeMethod string  // NormalizeConstantPower, NormalizePeak, or NormalizeNone
	AlignPeak       bool    // circularly shift entries so peaks coincide
	Trainable       bool    // whether the table is exposed to an optimizer
	MinRd, MaxRd    float64 // shape-parameter bounds, spaced log-uniformly
}

// DefaultTableConfig mirrors the reference configuration: 100 derivative
// prototypes of 1024 samples, peak-aligned and power-normalized, spanning
// R_d in [0.3, 2.7].
func DefaultTableConfig() TableConfig {
	return TableConfig{
		TableSize:       100,
		TableLength:     1024,
		TableType:       TableDerivative,
		NormalizeMethod: NormalizeConstantPower,
		AlignPeak:       true,
		MinRd:           0.3,
		MaxRd:           2.7,
	}
}

// glottalTable is the shared core of the indexed and weighted oscillators:
// the prototype bank plus phase tracking and table-to-waveform generation.
type glottalTable struct {
	table     [][]float64 // (tableSize, tableLength)
	trainable bool
}

func newGlottalTable(cfg TableConfig) (*glottalTable, error) {
	if cfg.TableSize < 2 || cfg.TableLength < 2 || cfg.MinRd <= 0 || cfg.MaxRd < cfg.MinRd {
		return nil, ErrInvalidTableConfig
	}
	switch cfg.TableType {
	case TableDerivative, TableFlow:
	default:
		return nil, ErrUnknownTableType
	}
	switch cfg.NormalizeMethod {
	case NormalizeConstantPower, NormalizePeak, NormalizeNone:
	default:
		return nil, ErrUnknownNormalization
	}

	table := make([][]float64, cfg.TableSize)
	logMin, logMax := math.Log(cfg.MinRd), math.Log(cfg.MaxRd)
	for i := range table {
		frac := float64(i) / float64(cfg.TableSize-1)
		rd := math.Exp(logMin + (logMax-logMin)*frac)
		table[i] = transformedLF(rd, cfg.TableLength)
	}

	if cfg.TableType == TableFlow {
		for i := range table {
			table[i] = dsp.CumulativeSum(table[i])
		}
	}

	if cfg.AlignPeak {
		alignPeaks(table, cfg.TableType)
	}

	switch cfg.NormalizeMethod {
	case NormalizeConstantPower:
		for _, row := range table {
			norm := math.Sqrt(dsp.InnerProduct(row, row, len(row)))
			scale := math.Sqrt(float64(len(row))) / norm
			for j := range row {
				row[j] *= scale
			}
		}
	case NormalizePeak:
		// Peak normalization only applies to the flow representation;
		// derivative tables keep their closure peak at -1.
		if cfg.TableType == TableFlow {
			for _, row := range table {
				peak := row[0]
				for _, v := range row {
					if v > peak {
						peak = v
					}
				}
				for j := range row {
					row[j] /= peak
				}
			}
		}
	}

	return &glottalTable{table: table, trainable: cfg.Trainable}, nil
}

// alignPeaks circularly shifts every prototype so its extremum (the minimum
// for derivative tables, the maximum for flow tables) lands at the largest
// extremum position found across the bank.
func alignPeaks(table [][]float64, tableType string) {
	peaks := make([]int, len(table))
	maxPos := 0
	for i, row := range table {
		pos := 0
		for j, v := range row {
			if tableType == TableDerivative {
				if v < row[pos] {
					pos = j
				}
			} else if v > row[pos] {
				pos = j
			}
		}
		peaks[i] = pos
		if pos > maxPos {
			maxPos = pos
		}
	}
	for i, row := range table {
		table[i] = circularShift(row, maxPos-peaks[i])
	}
}

// circularShift rotates x right by k samples (left for negative k).
func circularShift(x []float64, k int) []float64 {
	n := len(x)
	k = ((k % n) + n) % n
	out := make([]float64, n)
	copy(out, x[n-k:])
	copy(out[k:], x[:n-k])
	return out
}

// TableSize returns the number of prototype waveforms in the bank.
func (g *glottalTable) TableSize() int { return len(g.table) }

// Table exposes the prototype bank. When the oscillator was built trainable
// the external optimizer mutates these rows strictly between evaluations.
func (g *glottalTable) Table() [][]float64 { return g.table }

// wrapPhase integrates the per-sample phase increment into a wrapped phase
// in [0, 1), applying the optional per-sample offset before wrapping.
func wrapPhase(inc, offset []float64) []float64 {
	phase := dsp.CumulativeSum(inc)
	for i := range phase {
		if offset != nil {
			phase[i] += offset[i]
		}
		phase[i] = dsp.Wrap01(phase[i])
	}
	return phase
}

// generate renders a waveform by indexing per-frame tables with the wrapped
// phase. The phase axis is read with linear interpolation (wrapping from the
// last table sample back to the first) and consecutive frames' tables are
// cross-faded linearly across each hop, so the waveform is continuous at hop
// boundaries. The output length equals the phase length exactly; table frame
// counts are truncated or replicated at the boundary as needed.
func (g *glottalTable) generate(wrappedPhase []float64, tables [][]float64, ctx types.TimeContext) []float64 {
	seqLen := len(wrappedPhase)
	hop := ctx.HopLength
	nFrames := (seqLen + hop - 1) / hop

	// The cross-fade needs frames+1 table rows; replicate or truncate.
	rows := make([][]float64, nFrames+1)
	for f := range rows {
		switch {
		case f < len(tables):
			rows[f] = tables[f]
		case len(tables) > 0:
			rows[f] = tables[len(tables)-1]
		default:
			rows[f] = g.table[0]
		}
	}

	tableLength := len(rows[0])
	out := make([]float64, seqLen)
	for t := 0; t < seqLen; t++ {
		f := t / hop
		raw := wrappedPhase[t] * float64(tableLength)
		idx := dsp.Clamp(int(raw), 0, tableLength-1)
		p := raw - float64(idx)
		next := idx + 1
		if next == tableLength {
			next = 0
		}

		floorRow, ceilRow := rows[f], rows[f+1]
		floorVal := floorRow[idx]*(1-p) + floorRow[next]*p
		ceilVal := ceilRow[idx]*(1-p) + ceilRow[next]*p

		p2 := float64(t%hop) / float64(hop)
		out[t] = floorVal*(1-p2) + ceilVal*p2
	}
	return out
}

// Indexed is a glottal-flow table oscillator whose table selection is a
// continuous scalar control in [0, 1] interpolating between the two nearest
// bank entries.
type Indexed struct {
	*glottalTable
}

// NewIndexed builds an indexed glottal-flow table oscillator.
func NewIndexed(cfg TableConfig) (*Indexed, error) {
	g, err := newGlottalTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Indexed{glottalTable: g}, nil
}

// Synthesize renders the oscillator. ctrl.TableControl supplies the
// frame-rate selection control (batch, frames) in [0, 1].
func (o *Indexed) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error) {
	if !dsp.InRange(upsampledPhase, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	if ctrl.TableControl == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.TableControl) != len(upsampledPhase) {
		return nil, ErrControlShape
	}
	if !dsp.InRange(ctrl.TableControl, 0, 1) {
		return nil, ErrControlOutOfRange
	}
	if !phaseOffsetShaped(ctrl.PhaseOffset, upsampledPhase) {
		return nil, ErrControlShape
	}

	out := make([][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		tables := o.interpolateTables(ctrl.TableControl[b])
		var offset []float64
		if ctrl.PhaseOffset != nil {
			offset = ctrl.PhaseOffset[b]
		}
		phase := wrapPhase(upsampledPhase[b], offset)
		out[b] = o.generate(phase, tables, ctx)
	}
	return out, nil
}

// interpolateTables blends, for each frame, the two bank entries bracketing
// the control value.
func (o *Indexed) interpolateTables(control []float64) [][]float64 {
	numTables := len(o.table)
	tableLength := len(o.table[0])
	tables := make([][]float64, len(control))
	for f, c := range control {
		raw := c * float64(numTables-1)
		idx := dsp.Clamp(int(raw), 0, numTables-2)
		p := raw - float64(idx)
		row := make([]float64, tableLength)
		lo, hi := o.table[idx], o.table[idx+1]
		for j := range row {
			row[j] = lo[j]*(1-p) + hi[j]*p
		}
		tables[f] = row
	}
	return tables
}

// Weighted is a glottal-flow table oscillator whose table selection is a
// full probability-simplex weighting over the bank, combined in one matrix
// product per frame.
type Weighted struct {
	*glottalTable
}

// NewWeighted builds a weighted glottal-flow table oscillator.
func NewWeighted(cfg TableConfig) (*Weighted, error) {
	g, err := newGlottalTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Weighted{glottalTable: g}, nil
}

// Synthesize renders the oscillator. ctrl.TableWeights supplies the
// frame-rate weighting (batch, frames, tableSize) with entries in [0, 1].
func (o *Weighted) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error) {
	if !dsp.InRange(upsampledPhase, 0, 0.5) {
		return nil, ErrPhaseOutOfRange
	}
	if ctrl.TableWeights == nil {
		return nil, ErrMissingControl
	}
	if len(ctrl.TableWeights) != len(upsampledPhase) {
		return nil, ErrControlShape
	}
	if !dsp.InRange3(ctrl.TableWeights, 0, 1) {
		return nil, ErrControlOutOfRange
	}
	if !phaseOffsetShaped(ctrl.PhaseOffset, upsampledPhase) {
		return nil, ErrControlShape
	}

	out := make([][]float64, len(upsampledPhase))
	for b := range upsampledPhase {
		weights := ctrl.TableWeights[b]
		tables := make([][]float64, len(weights))
		for f := range weights {
			if len(weights[f]) != len(o.table) {
				return nil, ErrControlShape
			}
			tables[f] = o.weightTables(weights[f])
		}
		var offset []float64
		if ctrl.PhaseOffset != nil {
			offset = ctrl.PhaseOffset[b]
		}
		phase := wrapPhase(upsampledPhase[b], offset)
		out[b] = o.generate(phase, tables, ctx)
	}
	return out, nil
}

// weightTables computes the convex combination of all bank entries.
func (o *Weighted) weightTables(w []float64) []float64 {
	tableLength := len(o.table[0])
	row := make([]float64, tableLength)
	for i, wi := range w {
		if wi == 0 {
			continue
		}
		src := o.table[i]
		for j := range row {
			row[j] += wi * src[j]
		}
	}
	return row
}
