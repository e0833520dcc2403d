package falcon

// Arithmetic in Z_q[x]/(x^n+1). A polynomial's NTT is its evaluation at the
// odd powers of psi, a primitive 2n-th root of unity mod q; those powers are
// exactly the n roots of x^n+1 in Z_q.

// psi is found by search at startup: q-1 = 2^12 * 3, so elements of order 2n
// exist for every power of two up to 4096.
var psi uint32

func init() {
	for c := uint32(2); ; c++ {
		p := powQ(c, (Q-1)/(2*N))
		if powQ(p, N) == Q-1 {
			psi = p
			return
		}
	}
}

func powQ(base, exp uint32) uint32 {
	result := uint64(1)
	b := uint64(base)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = result * b % Q
		}
		b = b * b % Q
	}
	return uint32(result)
}

func invQ(a uint32) uint32 { return powQ(a, Q-2) }

// ntt evaluates p at psi^(2k+1) for k in [0, n).
func ntt(p [N]uint32) [N]uint32 {
	var out [N]uint32
	for k := 0; k < N; k++ {
		root := powQ(psi, uint32(2*k+1))
		var acc, pw uint64 = 0, 1
		for j := 0; j < N; j++ {
			acc = (acc + uint64(p[j])*pw) % Q
			pw = pw * uint64(root) % Q
		}
		out[k] = uint32(acc)
	}
	return out
}

// invNTT inverts ntt.
func invNTT(v [N]uint32) [N]uint32 {
	var out [N]uint32
	nInv := uint64(invQ(N))
	for j := 0; j < N; j++ {
		rootInv := uint64(invQ(powQ(psi, uint32(j))))
		var acc uint64
		omegaInv := invQ(powQ(psi, uint32(2*j)))
		var pw uint64 = 1
		for k := 0; k < N; k++ {
			acc = (acc + uint64(v[k])*pw) % Q
			pw = pw * uint64(omegaInv) % Q
		}
		out[j] = uint32(acc % Q * rootInv % Q * nInv % Q)
	}
	return out
}

// mulQ returns a*b in Z_q[x]/(x^n+1).
func mulQ(a, b [N]uint32) [N]uint32 {
	av, bv := ntt(a), ntt(b)
	for i := range av {
		av[i] = uint32(uint64(av[i]) * uint64(bv[i]) % Q)
	}
	return invNTT(av)
}

// invertQ returns f^-1 in Z_q[x]/(x^n+1), or false if f is not invertible.
func invertQ(f [N]uint32) ([N]uint32, bool) {
	v := ntt(f)
	for i := range v {
		if v[i] == 0 {
			return [N]uint32{}, false
		}
		v[i] = invQ(v[i])
	}
	return invNTT(v), true
}

// toPolyQ lifts signed coefficients into [0, q).
func toPolyQ(p [N]int16) [N]uint32 {
	var out [N]uint32
	for i, c := range p {
		v := int32(c) % Q
		if v < 0 {
			v += Q
		}
		out[i] = uint32(v)
	}
	return out
}

// center maps a residue to the representative in (-q/2, q/2].
func center(v uint32) int32 {
	if v > Q/2 {
		return int32(v) - Q
	}
	return int32(v)
}
