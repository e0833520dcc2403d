package falcon

import (
	"errors"
	"math"
	"math/big"
)

// NTRU equation solving: given small f, g, find integral F, G with
// f*G - g*F = q in Z[x]/(x^n+1). The recursion halves the degree via the
// field norm until the equation is a plain integer Bezout identity, then
// lifts the solution back up, size-reducing against (f, g) at every level.

var errNotCoprime = errors.New("resultants are not coprime")

func bigPoly(p []int16) []*big.Int {
	out := make([]*big.Int, len(p))
	for i, c := range p {
		out[i] = big.NewInt(int64(c))
	}
	return out
}

// galoisConj returns a(-x).
func galoisConj(a []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i, c := range a {
		out[i] = new(big.Int).Set(c)
		if i%2 == 1 {
			out[i].Neg(out[i])
		}
	}
	return out
}

// liftPoly returns a(x^2) as an element of the next ring up.
func liftPoly(a []*big.Int) []*big.Int {
	out := make([]*big.Int, 2*len(a))
	for i := range out {
		out[i] = new(big.Int)
	}
	for i, c := range a {
		out[2*i].Set(c)
	}
	return out
}

// fieldNorm maps a from Z[x]/(x^n+1) to Z[x]/(x^(n/2)+1) via
// N(a) = ae^2 - x*ao^2, where a(x) = ae(x^2) + x*ao(x^2).
func fieldNorm(a []*big.Int) []*big.Int {
	m := len(a) / 2
	ae := make([]*big.Int, m)
	ao := make([]*big.Int, m)
	for i := 0; i < m; i++ {
		ae[i] = a[2*i]
		ao[i] = a[2*i+1]
	}
	ae2 := polyMulMod(ae, ae)
	ao2 := polyMulMod(ao, ao)
	// multiply ao^2 by x, negacyclically
	shifted := make([]*big.Int, m)
	shifted[0] = new(big.Int).Neg(ao2[m-1])
	for i := 1; i < m; i++ {
		shifted[i] = ao2[i-1]
	}
	out := make([]*big.Int, m)
	for i := 0; i < m; i++ {
		out[i] = new(big.Int).Sub(ae2[i], shifted[i])
	}
	return out
}

// polyMulMod returns a*b in Z[x]/(x^n+1).
func polyMulMod(a, b []*big.Int) []*big.Int {
	n := len(a)
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	t := new(big.Int)
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			if bj.Sign() == 0 {
				continue
			}
			t.Mul(ai, bj)
			if i+j < n {
				out[i+j].Add(out[i+j], t)
			} else {
				out[i+j-n].Sub(out[i+j-n], t)
			}
		}
	}
	return out
}

func byteSize(a *big.Int) int {
	return (a.BitLen() + 7) / 8 * 8
}

func polyByteSize(p []*big.Int) int {
	size := 53
	for _, c := range p {
		if s := byteSize(c); s > size {
			size = s
		}
	}
	return size
}

// shiftToFloat scales p down by 2^shift and converts to float coefficients.
func shiftToFloat(p []*big.Int, shift int) []float64 {
	out := make([]float64, len(p))
	t := new(big.Int)
	for i, c := range p {
		t.Rsh(c, uint(shift))
		f, _ := new(big.Float).SetInt(t).Float64()
		out[i] = f
	}
	return out
}

// reduce size-reduces (F, G) against (f, g) in place, Babai-style: it
// repeatedly subtracts k*(f, g) where k is the rounded quotient
// (F*adj(f) + G*adj(g)) / (f*adj(f) + g*adj(g)), computed on scaled
// floating-point approximations.
func reduce(f, g, F, G []*big.Int) {
	size := polyByteSize(f)
	if s := polyByteSize(g); s > size {
		size = s
	}
	fa := fft(shiftToFloat(f, size-53))
	ga := fft(shiftToFloat(g, size-53))
	den := addFFT(mulFFT(fa, adjFFT(fa)), mulFFT(ga, adjFFT(ga)))

	for iter := 0; iter < 200; iter++ {
		bigSize := polyByteSize(F)
		if s := polyByteSize(G); s > bigSize {
			bigSize = s
		}
		if bigSize < size {
			return
		}
		Fa := fft(shiftToFloat(F, bigSize-53))
		Ga := fft(shiftToFloat(G, bigSize-53))
		num := addFFT(mulFFT(Fa, adjFFT(fa)), mulFFT(Ga, adjFFT(ga)))
		kf := invFFT(divFFT(num, den))
		k := make([]*big.Int, len(kf))
		zero := true
		for i, v := range kf {
			r := int64(math.Round(v))
			if r != 0 {
				zero = false
			}
			k[i] = big.NewInt(r)
		}
		if zero {
			return
		}
		fk := polyMulMod(f, k)
		gk := polyMulMod(g, k)
		t := new(big.Int)
		for i := range F {
			F[i].Sub(F[i], t.Lsh(fk[i], uint(bigSize-size)))
			G[i].Sub(G[i], t.Lsh(gk[i], uint(bigSize-size)))
		}
	}
}

// ntruSolve returns F, G with f*G - g*F = q, size-reduced against (f, g).
func ntruSolve(f, g []*big.Int) (F, G []*big.Int, err error) {
	if len(f) == 1 {
		d, u, v := new(big.Int), new(big.Int), new(big.Int)
		d.GCD(u, v, f[0], g[0])
		if d.Cmp(big.NewInt(1)) != 0 {
			return nil, nil, errNotCoprime
		}
		q := big.NewInt(Q)
		F = []*big.Int{new(big.Int).Mul(v, q)}
		F[0].Neg(F[0])
		G = []*big.Int{new(big.Int).Mul(u, q)}
		return F, G, nil
	}
	Fp, Gp, err := ntruSolve(fieldNorm(f), fieldNorm(g))
	if err != nil {
		return nil, nil, err
	}
	F = polyMulMod(liftPoly(Fp), galoisConj(g))
	G = polyMulMod(liftPoly(Gp), galoisConj(f))
	reduce(f, g, F, G)
	return F, G, nil
}
