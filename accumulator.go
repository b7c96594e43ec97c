package formulas

type accumulatorKind int

const (
	scalarAcc accumulatorKind = iota
	vectorAcc
)

// accumulator is the running total of add(): a single number until the first collection
// operand is seen, a vector of numbers from then on.
type accumulator struct {
	kind   accumulatorKind
	scalar float64
	vector []float64
}

func (self accumulator) addScalar(n float64) accumulator {
	switch self.kind {
	case vectorAcc:
		var out = make([]float64, len(self.vector))

		for i, v := range self.vector {
			out[i] = v + n
		}

		return accumulator{kind: vectorAcc, vector: out}
	default:
		return accumulator{kind: scalarAcc, scalar: self.scalar + n}
	}
}

// Add a sequence positionally.  Slots missing on either side count as zero, so the result is
// as long as the longer of the two.
func (self accumulator) addVector(seq []float64) accumulator {
	switch self.kind {
	case vectorAcc:
		var out = make([]float64, max(len(self.vector), len(seq)))

		copy(out, self.vector)

		for i, n := range seq {
			out[i] += n
		}

		return accumulator{kind: vectorAcc, vector: out}
	default:
		var out = make([]float64, len(seq))

		for i, n := range seq {
			out[i] = self.scalar + n
		}

		return accumulator{kind: vectorAcc, vector: out}
	}
}

// value returns a float64 for a scalar accumulator and a []float64 for a vector one.
func (self accumulator) value() interface{} {
	switch self.kind {
	case vectorAcc:
		return self.vector
	default:
		return self.scalar
	}
}
