package oscillator

import "math"

// transformedLF synthesizes one period of the Liljencrants-Fant glottal
// derivative waveform for a given shape parameter R_d, sampled at n points
// over a unit period. The timing parameters follow Fant's R_d regression:
//
//	Ra = (-1 + 4.8 Rd) / 100
//	Rk = (22.4 + 11.8 Rd) / 100
//	Rg = (Rk/4)(0.5 + 1.2 Rk) / (0.11 Rd - Ra (0.5 + 1.2 Rk))
//
// The exponential growth rate alpha is fixed by requiring zero net flow over
// the period and the return-phase constant epsilon by the usual continuity
// condition eps*Ta = 1 - exp(-eps*(Tc - Te)). The negative peak at the
// instant of closure equals -1 before any table normalization.
func transformedLF(rd float64, n int) []float64 {
	ra := (-1 + 4.8*rd) / 100
	rk := (22.4 + 11.8*rd) / 100
	rg := (rk / 4) * (0.5 + 1.2*rk) / (0.11*rd - ra*(0.5+1.2*rk))

	tp := 1 / (2 * rg)
	te := tp * (1 + rk)
	ta := ra
	tc := 1.0
	wg := math.Pi / tp

	eps := solveEpsilon(ta, tc-te)
	alpha := solveAlpha(te, tc, ta, wg, eps)

	e0 := -1 / (math.Exp(alpha*te) * math.Sin(wg*te))

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n) * tc
		if t <= te {
			out[i] = e0 * math.Exp(alpha*t) * math.Sin(wg*t)
		} else {
			out[i] = -1 / (eps * ta) *
				(math.Exp(-eps*(t-te)) - math.Exp(-eps*(tc-te)))
		}
	}
	return out
}

// solveEpsilon finds eps satisfying eps*ta = 1 - exp(-eps*dt) by Newton
// iteration from the small-ta asymptote 1/ta.
func solveEpsilon(ta, dt float64) float64 {
	eps := 1 / ta
	for i := 0; i < 50; i++ {
		f := eps*ta - 1 + math.Exp(-eps*dt)
		df := ta - dt*math.Exp(-eps*dt)
		step := f / df
		eps -= step
		if math.Abs(step) < 1e-12*math.Abs(eps) {
			break
		}
	}
	return eps
}

// solveAlpha finds the growth rate making the period integrate to zero.
// The open-phase and return-phase integrals have closed forms, so the root
// is located by scanning for a sign change and bisecting.
func solveAlpha(te, tc, ta, wg, eps float64) float64 {
	// Return-phase area is independent of alpha.
	dt := tc - te
	areaReturn := -1 / (eps * ta) *
		((1-math.Exp(-eps*dt))/eps - dt*math.Exp(-eps*dt))

	balance := func(alpha float64) float64 {
		// int_0^te e^{alpha t} sin(wg t) dt
		denom := alpha*alpha + wg*wg
		integral := (math.Exp(alpha*te)*(alpha*math.Sin(wg*te)-wg*math.Cos(wg*te)) + wg) / denom
		e0 := -1 / (math.Exp(alpha*te) * math.Sin(wg*te))
		return e0*integral + areaReturn
	}

	// Bracket the root.
	lo, hi := -1.0, 1.0
	flo, fhi := balance(lo), balance(hi)
	for i := 0; i < 64 && flo*fhi > 0; i++ {
		lo *= 2
		hi *= 2
		flo, fhi = balance(lo), balance(hi)
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fm := balance(mid)
		if fm == 0 {
			return mid
		}
		if flo*fm < 0 {
			hi = mid
		} else {
			lo = mid
			flo = fm
		}
	}
	return (lo + hi) / 2
}
