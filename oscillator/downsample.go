package oscillator

import (
	"math"
	"math/rand"

	"github.com/glotsynth/glotsynth/types"
)

// Downsampler derives a table-selection control from a higher-rate feature
// stream: average pooling by the hop rate, a gated linear unit, and a final
// linear projection. Its weights are owned by the oscillator that holds it
// and are mutated only by an external optimizer between evaluations.
type Downsampler struct {
	hopRate     int
	inChannels  int
	outChannels int

	// 1x1 convolutions as plain matrices, (out, in) plus bias.
	gateWeight [][]float64 // (2*in, in)
	gateBias   []float64
	projWeight [][]float64 // (out, in)
	projBias   []float64
}

// NewDownsampler builds a downsampler reducing the frame rate by hopRate and
// mapping inChannels features to outChannels control channels. Weights are
// initialized uniformly at a scale of 1/sqrt(inChannels).
func NewDownsampler(hopRate, inChannels, outChannels int) (*Downsampler, error) {
	if hopRate < 1 {
		return nil, ErrInvalidHopRate
	}
	if inChannels < 1 || outChannels < 1 {
		return nil, ErrInvalidTableConfig
	}
	bound := 1 / math.Sqrt(float64(inChannels))
	return &Downsampler{
		hopRate:     hopRate,
		inChannels:  inChannels,
		outChannels: outChannels,
		gateWeight:  randomMatrix(2*inChannels, inChannels, bound),
		gateBias:    randomVector(2*inChannels, bound),
		projWeight:  randomMatrix(outChannels, inChannels, bound),
		projBias:    randomVector(outChannels, bound),
	}, nil
}

// HopRate returns the frame-rate reduction factor.
func (d *Downsampler) HopRate() int { return d.hopRate }

// Apply maps features (batch, frames, inChannels) to pooled controls
// (batch, pooledFrames, outChannels).
func (d *Downsampler) Apply(features [][][]float64) ([][][]float64, error) {
	out := make([][][]float64, len(features))
	for b := range features {
		for _, frame := range features[b] {
			if len(frame) != d.inChannels {
				return nil, ErrControlShape
			}
		}
		pooled := avgPool(features[b], d.hopRate)
		rows := make([][]float64, len(pooled))
		for f := range pooled {
			gated := d.glu(pooled[f])
			rows[f] = affine(d.projWeight, d.projBias, gated)
		}
		out[b] = rows
	}
	return out, nil
}

// glu applies the 1x1 expansion to 2*in channels and gates the first half
// with the sigmoid of the second half.
func (d *Downsampler) glu(x []float64) []float64 {
	expanded := affine(d.gateWeight, d.gateBias, x)
	out := make([]float64, d.inChannels)
	for i := range out {
		out[i] = expanded[i] * sigmoid(expanded[i+d.inChannels])
	}
	return out
}

// Parameters returns the downsampler's weight matrices and biases in a fixed
// order (gate weight, gate bias, projection weight, projection bias) for the
// external optimizer.
func (d *Downsampler) Parameters() ([][][]float64, [][]float64) {
	return [][][]float64{d.gateWeight, d.projWeight},
		[][]float64{d.gateBias, d.projBias}
}

// avgPool pools frames by k with stride k and k/2 zero frames of padding on
// each side, counting the padding in the divisor.
func avgPool(frames [][]float64, k int) [][]float64 {
	if len(frames) == 0 {
		return nil
	}
	channels := len(frames[0])
	pad := k / 2
	total := len(frames) + 2*pad
	n := (total-k)/k + 1
	if n < 1 {
		n = 0
	}
	out := make([][]float64, n)
	for f := 0; f < n; f++ {
		row := make([]float64, channels)
		for j := 0; j < k; j++ {
			src := f*k + j - pad
			if src < 0 || src >= len(frames) {
				continue
			}
			for c := 0; c < channels; c++ {
				row[c] += frames[src][c]
			}
		}
		for c := range row {
			row[c] /= float64(k)
		}
		out[f] = row
	}
	return out
}

func affine(w [][]float64, b, x []float64) []float64 {
	out := make([]float64, len(w))
	for i := range w {
		acc := b[i]
		for j, v := range x {
			acc += w[i][j] * v
		}
		out[i] = acc
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func randomMatrix(rows, cols int, bound float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = randomVector(cols, bound)
	}
	return m
}

func randomVector(n int, bound float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (2*rand.Float64() - 1) * bound
	}
	return v
}

// DownsampledIndexed is an indexed glottal-flow table oscillator whose
// selection control is derived from an auxiliary feature stream through a
// Downsampler and squashed with a sigmoid.
type DownsampledIndexed struct {
	*Indexed
	downsampler *Downsampler
}

// NewDownsampledIndexed builds the downsampled indexed variant.
func NewDownsampledIndexed(hopRate, inChannels int, cfg TableConfig) (*DownsampledIndexed, error) {
	base, err := NewIndexed(cfg)
	if err != nil {
		return nil, err
	}
	ds, err := NewDownsampler(hopRate, inChannels, 1)
	if err != nil {
		return nil, err
	}
	return &DownsampledIndexed{Indexed: base, downsampler: ds}, nil
}

// Downsampler exposes the owned control transform for the optimizer.
func (o *DownsampledIndexed) Downsampler() *Downsampler { return o.downsampler }

// Synthesize derives the scalar selection control from ctrl.Features and
// renders the base oscillator at the coarser hop rate.
func (o *DownsampledIndexed) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.Features == nil {
		return nil, ErrMissingControl
	}
	pooled, err := o.downsampler.Apply(ctrl.Features)
	if err != nil {
		return nil, err
	}
	control := make([][]float64, len(pooled))
	for b := range pooled {
		row := make([]float64, len(pooled[b]))
		for f := range pooled[b] {
			row[f] = sigmoid(pooled[b][f][0])
		}
		control[b] = row
	}
	ctrl.TableControl = control
	return o.Indexed.Synthesize(upsampledPhase, ctrl, ctx.Rescale(o.downsampler.HopRate()))
}

// DownsampledWeighted is a weighted glottal-flow table oscillator whose
// weighting is derived from an auxiliary feature stream through a
// Downsampler and normalized with a softmax over the bank.
type DownsampledWeighted struct {
	*Weighted
	downsampler *Downsampler
}

// NewDownsampledWeighted builds the downsampled weighted variant.
func NewDownsampledWeighted(hopRate, inChannels int, cfg TableConfig) (*DownsampledWeighted, error) {
	base, err := NewWeighted(cfg)
	if err != nil {
		return nil, err
	}
	ds, err := NewDownsampler(hopRate, inChannels, cfg.TableSize)
	if err != nil {
		return nil, err
	}
	return &DownsampledWeighted{Weighted: base, downsampler: ds}, nil
}

// Downsampler exposes the owned control transform for the optimizer.
func (o *DownsampledWeighted) Downsampler() *Downsampler { return o.downsampler }

// Synthesize derives the simplex weighting from ctrl.Features and renders
// the base oscillator at the coarser hop rate.
func (o *DownsampledWeighted) Synthesize(upsampledPhase [][]float64, ctrl types.OscillatorControls, ctx types.TimeContext) ([][]float64, error) {
	if ctrl.Features == nil {
		return nil, ErrMissingControl
	}
	pooled, err := o.downsampler.Apply(ctrl.Features)
	if err != nil {
		return nil, err
	}
	weights := make([][][]float64, len(pooled))
	for b := range pooled {
		rows := make([][]float64, len(pooled[b]))
		for f := range pooled[b] {
			rows[f] = softmax(pooled[b][f])
		}
		weights[b] = rows
	}
	ctrl.TableWeights = weights
	return o.Weighted.Synthesize(upsampledPhase, ctrl, ctx.Rescale(o.downsampler.HopRate()))
}

// softmax with the usual max subtraction for stability.
func softmax(x []float64) []float64 {
	maxV := x[0]
	for _, v := range x {
		if v > maxV {
			maxV = v
		}
	}
	out := make([]float64, len(x))
	var sum float64
	for i, v := range x {
		out[i] = math.Exp(v - maxV)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
