package array

import (
	"fmt"
	"strings"
)

// einsumTerm is one comma-separated operand (or the output) of an einsum
// spec: its index labels in order, and where an "..." sits among them.
type einsumTerm struct {
	labels   []byte
	ellipsis int // position within labels, -1 when absent
}

func parseEinsumTerm(term string) einsumTerm {
	t := einsumTerm{ellipsis: -1}
	for i := 0; i < len(term); i++ {
		c := term[i]
		switch {
		case c == '.':
			if t.ellipsis >= 0 || i+2 >= len(term) || term[i+1] != '.' || term[i+2] != '.' {
				panic(fmt.Sprintf("einsum: malformed ellipsis in term %q", term))
			}
			t.ellipsis = len(t.labels)
			i += 2
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			t.labels = append(t.labels, c)
		case c == ' ':
		default:
			panic(fmt.Sprintf("einsum: invalid character %q in term %q", c, term))
		}
	}
	return t
}

func parseEinsumSpec(spec string, nOperands int) ([]einsumTerm, einsumTerm) {
	arrow := strings.Index(spec, "->")
	if arrow < 0 {
		panic(fmt.Sprintf("einsum: spec %q needs an explicit '->'", spec))
	}
	inParts := strings.Split(spec[:arrow], ",")
	if len(inParts) != nOperands {
		panic(fmt.Sprintf("einsum: spec %q names %d operands, got %d", spec, len(inParts), nOperands))
	}
	terms := make([]einsumTerm, len(inParts))
	for i, part := range inParts {
		terms[i] = parseEinsumTerm(part)
	}
	return terms, parseEinsumTerm(spec[arrow+2:])
}

// Einsum evaluates an Einstein-summation spec over the operands.
//
// The spec uses single-letter axis labels with an explicit "->" output.
// "..." stands for any number of leading batch axes; batch axes broadcast
// across operands NumPy-style, while labeled axes must match exactly. A
// label repeated within one operand reads its diagonal. Labels that do not
// appear in the output are summed over.
//
// Examples:
//
//	array.Einsum("...ij,...jk->...ik", a, b)   // batched matrix product
//	array.Einsum("...ij,...j->...i", m, v)     // batched matrix-vector
//	array.Einsum("n,...i->...ni", t, v)        // scale v by every t, new axis
//	array.Einsum("...ii->...", m)              // batched trace
func Einsum(spec string, operands ...*Array) *Array {
	if len(operands) == 0 {
		panic("einsum: need at least one operand")
	}
	inTerms, outTerm := parseEinsumSpec(spec, len(operands))

	// Bind labels to sizes and split off each operand's batch block.
	sizes := map[byte]int{}
	epos := make([]int, len(operands))     // first batch dim per operand
	batchNDim := make([]int, len(operands))
	batchShapes := make([]Shape, len(operands))
	for i, op := range operands {
		t := inTerms[i]
		nb := op.NDim() - len(t.labels)
		e := t.ellipsis
		if e < 0 {
			if nb != 0 {
				panic(fmt.Sprintf("einsum: term %d has %d labels for a %dD operand", i, len(t.labels), op.NDim()))
			}
			e = len(t.labels)
		}
		if nb < 0 {
			panic(fmt.Sprintf("einsum: term %d has %d labels for a %dD operand", i, len(t.labels), op.NDim()))
		}
		epos[i] = e
		batchNDim[i] = nb
		batchShapes[i] = op.shape[e : e+nb]

		for k, l := range t.labels {
			dim := k
			if k >= e {
				dim += nb
			}
			size := op.shape[dim]
			if prev, ok := sizes[l]; ok && prev != size {
				panic(fmt.Sprintf("einsum: size mismatch for index %q: %d vs %d", l, prev, size))
			}
			sizes[l] = size
		}
	}

	batchShape, err := BroadcastAll(batchShapes...)
	if err != nil {
		panic(fmt.Sprintf("einsum: %v", err))
	}
	nBatch := len(batchShape)
	if outTerm.ellipsis < 0 && nBatch > 0 {
		panic(fmt.Sprintf("einsum: spec %q drops batch axes; add '...' to the output", spec))
	}

	// Roles index the joint coordinate space: batch axes first, then one
	// role per distinct label (output labels, then summed labels).
	labelRole := map[byte]int{}
	roleSizes := []int(batchShape)
	addRole := func(l byte) {
		if _, ok := labelRole[l]; ok {
			return
		}
		size, ok := sizes[l]
		if !ok {
			panic(fmt.Sprintf("einsum: output index %q not present in any operand", l))
		}
		labelRole[l] = nBatch + len(labelRole)
		roleSizes = append(roleSizes, size)
	}
	for _, l := range outTerm.labels {
		if _, dup := labelRole[l]; dup {
			panic(fmt.Sprintf("einsum: output index %q repeated", l))
		}
		addRole(l)
	}
	var sumRoles []int
	for _, t := range inTerms {
		for _, l := range t.labels {
			if _, ok := labelRole[l]; !ok {
				addRole(l)
				sumRoles = append(sumRoles, labelRole[l])
			}
		}
	}

	// Per-operand stride for every role; broadcast batch axes get stride 0
	// and a label repeated in one operand sums its strides (diagonal read).
	strideByRole := make([][]int, len(operands))
	for i, op := range operands {
		s := make([]int, len(roleSizes))
		opStrides := op.shape.ComputeStrides()
		for j := 0; j < nBatch; j++ {
			opDim := j - (nBatch - batchNDim[i])
			if opDim >= 0 && batchShapes[i][opDim] != 1 {
				s[j] = opStrides[epos[i]+opDim]
			}
		}
		for k, l := range inTerms[i].labels {
			dim := k
			if k >= epos[i] {
				dim += batchNDim[i]
			}
			s[labelRole[l]] += opStrides[dim]
		}
		strideByRole[i] = s
	}

	// Output layout: labels before the ellipsis, batch axes, labels after.
	outE := outTerm.ellipsis
	if outE < 0 {
		outE = len(outTerm.labels)
	}
	outShape := make(Shape, 0, len(outTerm.labels)+nBatch)
	outDimRole := make([]int, 0, len(outTerm.labels)+nBatch)
	for _, l := range outTerm.labels[:outE] {
		outShape = append(outShape, sizes[l])
		outDimRole = append(outDimRole, labelRole[l])
	}
	for j := 0; j < nBatch; j++ {
		outShape = append(outShape, batchShape[j])
		outDimRole = append(outDimRole, j)
	}
	for _, l := range outTerm.labels[outE:] {
		outShape = append(outShape, sizes[l])
		outDimRole = append(outDimRole, labelRole[l])
	}

	out := newDense(outShape)
	outStrides := outShape.ComputeStrides()
	coords := make([]int, len(roleSizes))

	for oi := range out.data {
		rem := oi
		for d := range outShape {
			coords[outDimRole[d]] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		for _, r := range sumRoles {
			coords[r] = 0
		}

		acc := 0.0
		for {
			prod := 1.0
			for i, op := range operands {
				idx := 0
				for r, c := range coords {
					idx += c * strideByRole[i][r]
				}
				prod *= op.data[idx]
			}
			acc += prod

			k := len(sumRoles) - 1
			for ; k >= 0; k-- {
				r := sumRoles[k]
				coords[r]++
				if coords[r] < roleSizes[r] {
					break
				}
				coords[r] = 0
			}
			if k < 0 {
				break
			}
		}
		out.data[oi] = acc
	}
	return out
}
