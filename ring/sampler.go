package ring

// UniformVector fills dst with coefficients drawn uniformly from
// [0, q), via rejection sampling against src (ported from the teacher's
// ring_sampler_uniform.go UniformSampler, generalized from a multi-modulus
// polynomial to a single flat vector since NTTTables is scoped to one
// (n, q) pair rather than an RNS chain).
func UniformVector(dst []uint64, q uint64, src Source) {
	for i := range dst {
		dst[i] = src.Uint64N(q)
	}
}

// UniformVectorBounded fills dst with coefficients drawn uniformly from
// [0, bound*q), useful for exercising the lazy-reduction input ranges
// the NTT engine accepts (input_mod_factor in {1,2,4}).
func UniformVectorBounded(dst []uint64, q uint64, bound int, src Source) {
	for i := range dst {
		dst[i] = src.Uint64N(q * uint64(bound))
	}
}
