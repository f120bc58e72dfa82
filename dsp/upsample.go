package dsp

// LinearUpsample interpolates a frame-rate sequence up to sample rate.
// Each frame value is treated as a sample taken at the center of its hop, so
// output sample i reads the fractional frame position (i+0.5)/hop - 0.5,
// clamped at both sequence boundaries. The output has len(frames)*hop
// samples.
//
// A hop of 1 returns a copy of the input.
func LinearUpsample(frames []float64, hop int) []float64 {
	n := len(frames)
	out := make([]float64, n*hop)
	if n == 0 {
		return out
	}
	if hop == 1 {
		copy(out, frames)
		return out
	}
	for i := range out {
		pos := (float64(i)+0.5)/float64(hop) - 0.5
		if pos <= 0 {
			out[i] = frames[0]
			continue
		}
		if pos >= float64(n-1) {
			out[i] = frames[n-1]
			continue
		}
		j := int(pos)
		w := pos - float64(j)
		out[i] = frames[j]*(1-w) + frames[j+1]*w
	}
	return out
}

// LinearUpsampleBatch applies LinearUpsample to each row of a batched
// frame-rate sequence shaped (batch, frames).
func LinearUpsampleBatch(frames [][]float64, hop int) [][]float64 {
	out := make([][]float64, len(frames))
	for b := range frames {
		out[b] = LinearUpsample(frames[b], hop)
	}
	return out
}

// LinearUpsampleChannels interpolates a batched multi-channel frame sequence
// shaped (batch, frames, channels) up to (batch, frames*hop, channels),
// upsampling each channel independently.
func LinearUpsampleChannels(frames [][][]float64, hop int) [][][]float64 {
	out := make([][][]float64, len(frames))
	for b := range frames {
		nFrames := len(frames[b])
		if nFrames == 0 {
			out[b] = nil
			continue
		}
		channels := len(frames[b][0])
		col := make([]float64, nFrames)
		up := make([][]float64, nFrames*hop)
		for t := range up {
			up[t] = make([]float64, channels)
		}
		for c := 0; c < channels; c++ {
			for f := 0; f < nFrames; f++ {
				col[f] = frames[b][f][c]
			}
			upCol := LinearUpsample(col, hop)
			for t := range upCol {
				up[t][c] = upCol[t]
			}
		}
		out[b] = up
	}
	return out
}
