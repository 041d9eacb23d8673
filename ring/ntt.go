package ring

// CheckedBuild gates the optional per-element bound assertion described in
// spec §6/§7 ("checked builds enable bound checks on every input
// element"). It defaults to off, matching the teacher's convention of
// leaving expensive debug assertions out of the hot path unless a caller
// opts in (mirrors ring's DBG-gated panics in the teacher's ringqp.go).
var CheckedBuild = false

// NTTEngine binds a fixed NTTTables to a kernel chosen once at
// construction (spec §4.7, §6 "NTT(tables)" constructor). Binding the
// kernel up front instead of re-dispatching on every call is what spec §9
// calls runtime dispatch without virtual calls: ComputeForward and
// ComputeInverse are a single branch on e.kernel, not a chain of feature
// checks.
type NTTEngine struct {
	tables *NTTTables
	kernel kernelKind
}

// NewNTTEngine selects a kernel for tables according to the Dispatcher
// rules in spec §4.7 and returns a ready-to-use engine.
func NewNTTEngine(tables *NTTTables) *NTTEngine {
	return &NTTEngine{
		tables: tables,
		kernel: selectKernel(tables.BitShift(), tables.N),
	}
}

// Tables returns the engine's bound NTTTables.
func (e *NTTEngine) Tables() *NTTTables { return e.tables }

// Kernel reports which kernel variant the engine latched: "scalar",
// "simd64", or "simd52".
func (e *NTTEngine) Kernel() string {
	switch e.kernel {
	case kernelSimd64:
		return "simd64"
	case kernelSimd52:
		return "simd52"
	default:
		return "scalar"
	}
}

func validateModFactors(op string, inputModFactor, outputModFactor int, inputAllowed, outputAllowed []int) error {
	if !intIn(inputModFactor, inputAllowed) {
		return newPrecondition(op, "input_mod_factor %d not in %v", inputModFactor, inputAllowed)
	}
	if !intIn(outputModFactor, outputAllowed) {
		return newPrecondition(op, "output_mod_factor %d not in %v", outputModFactor, outputAllowed)
	}
	return nil
}

func intIn(v int, set []int) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func checkElementBound(op string, e []uint64, q uint64, modFactor int) error {
	if !CheckedBuild {
		return nil
	}
	bound := uint64(modFactor) * q
	for i, v := range e {
		if v >= bound {
			return newPrecondition(op, "element %d value %d exceeds declared bound %d*q=%d", i, v, modFactor, bound)
		}
	}
	return nil
}

// ComputeForward runs the forward negacyclic NTT on elements in place,
// honoring the input_mod_factor/output_mod_factor contract of spec §4.5:
// input_mod_factor declares elements are in [0, input_mod_factor*q),
// accepting {2,4}; output_mod_factor selects {1,4} for the result.
func (e *NTTEngine) ComputeForward(elements []uint64, inputModFactor, outputModFactor int) error {
	if len(elements) != e.tables.N {
		return newPrecondition("ComputeForward", "element count %d does not match table degree %d", len(elements), e.tables.N)
	}
	if err := validateModFactors("ComputeForward", inputModFactor, outputModFactor, []int{2, 4}, []int{1, 4}); err != nil {
		return err
	}
	if err := checkElementBound("ComputeForward", elements, e.tables.Q, inputModFactor); err != nil {
		return err
	}
	switch e.kernel {
	case kernelSimd52:
		forwardSimd52(elements, e.tables, inputModFactor, outputModFactor)
	case kernelSimd64:
		forwardSimd64(elements, e.tables, inputModFactor, outputModFactor)
	default:
		forwardScalar(elements, e.tables, inputModFactor, outputModFactor)
	}
	return nil
}

// ComputeForwardOutOfPlace runs the forward transform reading from src and
// writing to dst, leaving src untouched (spec §6's out-of-place overload).
func (e *NTTEngine) ComputeForwardOutOfPlace(dst, src []uint64, inputModFactor, outputModFactor int) error {
	if len(dst) != e.tables.N || len(src) != e.tables.N {
		return newPrecondition("ComputeForwardOutOfPlace", "dst/src length must equal table degree %d", e.tables.N)
	}
	copy(dst, src)
	return e.ComputeForward(dst, inputModFactor, outputModFactor)
}

// ComputeInverse runs the inverse negacyclic NTT on elements in place. Per
// spec §4.6, input_mod_factor accepts {1,2} and output_mod_factor accepts
// {1,2}.
func (e *NTTEngine) ComputeInverse(elements []uint64, inputModFactor, outputModFactor int) error {
	if len(elements) != e.tables.N {
		return newPrecondition("ComputeInverse", "element count %d does not match table degree %d", len(elements), e.tables.N)
	}
	if err := validateModFactors("ComputeInverse", inputModFactor, outputModFactor, []int{1, 2}, []int{1, 2}); err != nil {
		return err
	}
	if err := checkElementBound("ComputeInverse", elements, e.tables.Q, inputModFactor); err != nil {
		return err
	}
	switch e.kernel {
	case kernelSimd52:
		inverseSimd52(elements, e.tables, inputModFactor, outputModFactor)
	case kernelSimd64:
		inverseSimd64(elements, e.tables, inputModFactor, outputModFactor)
	default:
		inverseScalar(elements, e.tables, inputModFactor, outputModFactor)
	}
	return nil
}

// ComputeInverseOutOfPlace is ComputeInverse's out-of-place counterpart.
func (e *NTTEngine) ComputeInverseOutOfPlace(dst, src []uint64, inputModFactor, outputModFactor int) error {
	if len(dst) != e.tables.N || len(src) != e.tables.N {
		return newPrecondition("ComputeInverseOutOfPlace", "dst/src length must equal table degree %d", e.tables.N)
	}
	copy(dst, src)
	return e.ComputeInverse(dst, inputModFactor, outputModFactor)
}

// ReferenceForward is the full-reduction forward transform used to
// cross-check the lazy kernels in tests (spec §4.5, §8 property 2).
func ReferenceForward(elements []uint64, tables *NTTTables) error {
	if len(elements) != tables.N {
		return newPrecondition("ReferenceForward", "element count %d does not match table degree %d", len(elements), tables.N)
	}
	referenceForward(elements, tables)
	return nil
}

// ReferenceInverse is the full-reduction inverse transform used to
// cross-check the lazy kernels in tests.
func ReferenceInverse(elements []uint64, tables *NTTTables) error {
	if len(elements) != tables.N {
		return newPrecondition("ReferenceInverse", "element count %d does not match table degree %d", len(elements), tables.N)
	}
	referenceInverse(elements, tables)
	return nil
}
