package falcon

import (
	"math"
	"math/cmplx"
)

// The FFT represents a polynomial in R[x]/(x^n+1) by its evaluations at the
// n complex roots of x^n+1, ordered so that point k of a size-n transform is
// exp(iπ(2k+1)/n). Squaring point k of a size-n transform yields point k of a
// size-n/2 transform, which is what makes splitFFT and mergeFFT exact.

// zetaTables[logn][k] = exp(iπ(2k+1)/2^logn).
var zetaTables [logN + 1][]complex128

func init() {
	for logn := 0; logn <= logN; logn++ {
		n := 1 << logn
		zetaTables[logn] = make([]complex128, n)
		for k := 0; k < n; k++ {
			theta := math.Pi * float64(2*k+1) / float64(n)
			zetaTables[logn][k] = cmplx.Exp(complex(0, theta))
		}
	}
}

func zetas(n int) []complex128 { return zetaTables[l2(n)] }

func l2(n int) int {
	logn := 0
	for 1<<logn < n {
		logn++
	}
	return logn
}

// splitFFT maps the FFT of f to the FFTs of its even and odd halves, where
// f(x) = f0(x^2) + x*f1(x^2).
func splitFFT(f []complex128) (f0, f1 []complex128) {
	m := len(f) / 2
	z := zetas(len(f))
	f0 = make([]complex128, m)
	f1 = make([]complex128, m)
	for k := 0; k < m; k++ {
		f0[k] = (f[k] + f[k+m]) / 2
		f1[k] = (f[k] - f[k+m]) / (2 * z[k])
	}
	return
}

// mergeFFT inverts splitFFT.
func mergeFFT(f0, f1 []complex128) []complex128 {
	m := len(f0)
	f := make([]complex128, 2*m)
	z := zetas(2 * m)
	for k := 0; k < m; k++ {
		t := z[k] * f1[k]
		f[k] = f0[k] + t
		f[k+m] = f0[k] - t
	}
	return f
}

// fft evaluates f at the roots of x^n+1.
func fft(f []float64) []complex128 {
	n := len(f)
	if n == 1 {
		return []complex128{complex(f[0], 0)}
	}
	f0 := make([]float64, n/2)
	f1 := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		f0[i] = f[2*i]
		f1[i] = f[2*i+1]
	}
	return mergeFFT(fft(f0), fft(f1))
}

// invFFT recovers real coefficients from evaluations.
func invFFT(F []complex128) []float64 {
	n := len(F)
	if n == 1 {
		return []float64{real(F[0])}
	}
	F0, F1 := splitFFT(F)
	f0, f1 := invFFT(F0), invFFT(F1)
	f := make([]float64, n)
	for i := 0; i < n/2; i++ {
		f[2*i] = f0[i]
		f[2*i+1] = f1[i]
	}
	return f
}

func mulFFT(a, b []complex128) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = a[i] * b[i]
	}
	return c
}

func addFFT(a, b []complex128) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = a[i] + b[i]
	}
	return c
}

func subFFT(a, b []complex128) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = a[i] - b[i]
	}
	return c
}

func divFFT(a, b []complex128) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = a[i] / b[i]
	}
	return c
}

// adjFFT returns the FFT of the Hermitian adjoint, which is pointwise complex
// conjugation in the evaluation domain.
func adjFFT(a []complex128) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = cmplx.Conj(a[i])
	}
	return c
}

func scaleFFT(a []complex128, s float64) []complex128 {
	c := make([]complex128, len(a))
	for i := range a {
		c[i] = a[i] * complex(s, 0)
	}
	return c
}
