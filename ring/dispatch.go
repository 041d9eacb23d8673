package ring

import "github.com/klauspost/cpuid/v2"

// FeatureMask is the process-wide CPU capability snapshot the Dispatcher
// consults (spec §4.7/§6): three booleans, two equivalent to what CPUID
// would expose plus the build-time IFMA enable flag.
type FeatureMask struct {
	AVX512DQ        bool
	AVX512IFMA      bool
	IFMABuildEnable bool
}

// features is populated exactly once at package initialization from
// klauspost/cpuid/v2, the CPU feature probe the teacher's go.mod already
// pulls in (transitively, via blake3's assembly dispatch); this module
// promotes it to a direct dependency and uses it for the Dispatcher
// instead.
var features = FeatureMask{
	AVX512DQ:        cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ),
	AVX512IFMA:      cpuid.CPU.Supports(cpuid.AVX512IFMA),
	IFMABuildEnable: ifmaBuildEnabled,
}

// ifmaBuildEnabled gates the 52-bit kernel behind a package-level
// variable rather than a Go build tag. Its value is copied into
// features.IFMABuildEnable once, at package initialization; selectKernel
// reads only the copy, so changing ifmaBuildEnabled afterwards has no
// effect on dispatch (spec §4.7: "gated by both a build-time flag ...
// and a runtime feature bit").
var ifmaBuildEnabled = true

// Features returns the process-wide CPU feature mask.
func Features() FeatureMask {
	return features
}

// kernelKind is the tagged variant the NTTEngine latches at construction
// instead of a class hierarchy (spec §9 "Runtime dispatch without
// virtual calls").
type kernelKind int

const (
	kernelScalar kernelKind = iota
	kernelSimd64
	kernelSimd52
)

// minSimdDegree is the smallest degree for which the vectorized kernels
// pay for themselves; below it every transform uses the scalar path
// regardless of available CPU features (spec §4.7).
const minSimdDegree = 16

// selectKernel implements the three-step Dispatcher decision from spec
// §4.7, given the table's latched bit-width and the transform degree.
func selectKernel(bitShift, n int) kernelKind {
	if n < minSimdDegree {
		return kernelScalar
	}
	if bitShift == 52 && features.AVX512IFMA && features.IFMABuildEnable {
		return kernelSimd52
	}
	if features.AVX512DQ {
		return kernelSimd64
	}
	return kernelScalar
}

// latchBitShift picks the table bit-width at NTTTables construction time:
// 52 when q is safely below both the forward and inverse IFMA thresholds
// (the inverse path's range is tighter, spec §4.7), 64 otherwise.
func latchBitShift(q uint64) int {
	if q < inverseIFMABound {
		return 52
	}
	return 64
}
