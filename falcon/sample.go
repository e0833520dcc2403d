package falcon

import (
	"encoding/binary"
	"io"
	"math"
	"math/cmplx"
)

const (
	// signatureSigma is the standard deviation of signature vectors.
	signatureSigma = 165.7366171829776

	// sigmaMin bounds leaf deviations from below.
	sigmaMin = 1.2778336969128337

	// samplerTail is the rejection window half-width, in deviations.
	samplerTail = 12
)

// sampler draws randomness for the Gaussian samplers from an external
// reader. Read errors are sticky and surface once at the end of a signing
// attempt.
type sampler struct {
	r   io.Reader
	err error
}

func (s *sampler) uint64() uint64 {
	var b [8]byte
	if s.err == nil {
		_, s.err = io.ReadFull(s.r, b[:])
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (s *sampler) float64() float64 {
	return float64(s.uint64()>>11) / (1 << 53)
}

// gaussian draws an integer from the discrete Gaussian of the given center
// and deviation, by rejection from a uniform window around the center.
func (s *sampler) gaussian(center, sigma float64) int64 {
	w := int64(math.Ceil(samplerTail * sigma))
	lo := int64(math.Floor(center)) - w
	span := uint64(2*w + 1)
	for i := 0; s.err == nil || i == 0; i++ {
		z := lo + int64(s.uint64()%span)
		x := (float64(z) - center) / sigma
		if s.float64() < math.Exp(-x*x/2) {
			return z
		}
	}
	return 0
}

// ldlTree is the LDL decomposition tree of the secret basis Gram matrix,
// with leaf deviations pre-divided for sampling.
type ldlTree struct {
	l10            []complex128
	left, right    *ldlTree
	sigma0, sigma1 float64
}

func clampSigma(sigma float64) float64 {
	if sigma < sigmaMin {
		return sigmaMin
	}
	return sigma
}

// newLDLTree decomposes the self-adjoint Gram matrix [[g00, g01], [adj(g01),
// g11]] given in the evaluation domain.
func newLDLTree(g00, g01, g11 []complex128) *ldlTree {
	n := len(g00)
	l10 := make([]complex128, n)
	d11 := make([]complex128, n)
	for k := range g00 {
		l10[k] = cmplx.Conj(g01[k]) / g00[k]
		d11[k] = g11[k] - l10[k]*cmplx.Conj(l10[k])*g00[k]
	}
	t := &ldlTree{l10: l10}
	if n == 1 {
		t.sigma0 = clampSigma(signatureSigma / math.Sqrt(real(g00[0])))
		t.sigma1 = clampSigma(signatureSigma / math.Sqrt(real(d11[0])))
		return t
	}
	e0, e1 := splitFFT(g00)
	t.left = newLDLTree(e0, e1, e0)
	o0, o1 := splitFFT(d11)
	t.right = newLDLTree(o0, o1, o0)
	return t
}

// sample draws a lattice point (z0, z1) close to the target (t0, t1),
// descending the tree so that each coordinate is sampled with the deviation
// its Gram diagonal allows.
func (t *ldlTree) sample(s *sampler, t0, t1 []complex128) (z0, z1 []complex128) {
	if len(t0) == 1 {
		z1v := complex(float64(s.gaussian(real(t1[0]), t.sigma1)), 0)
		t0b := t0[0] + (t1[0]-z1v)*t.l10[0]
		z0v := complex(float64(s.gaussian(real(t0b), t.sigma0)), 0)
		return []complex128{z0v}, []complex128{z1v}
	}
	t1e, t1o := splitFFT(t1)
	z1e, z1o := t.right.sample(s, t1e, t1o)
	z1 = mergeFFT(z1e, z1o)
	t0b := make([]complex128, len(t0))
	for k := range t0 {
		t0b[k] = t0[k] + (t1[k]-z1[k])*t.l10[k]
	}
	t0e, t0o := splitFFT(t0b)
	z0e, z0o := t.left.sample(s, t0e, t0o)
	return mergeFFT(z0e, z0o), z1
}
