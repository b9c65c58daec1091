package matrix

// Add returns the element-wise sum m + other.
// Both operands must have the same shape.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeErrorf("Add", m, other)
	}
	out := Zeros(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out, nil
}

// Subtract returns the element-wise difference m - other.
// Both operands must have the same shape.
func (m *Matrix) Subtract(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeErrorf("Subtract", m, other)
	}
	out := Zeros(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] - other.data[i]
	}
	return out, nil
}

// ElementwiseMultiply returns the Hadamard product m ⊙ other.
// Both operands must have the same shape.
func (m *Matrix) ElementwiseMultiply(other *Matrix) (*Matrix, error) {
	if !m.SameShape(other) {
		return nil, shapeErrorf("ElementwiseMultiply", m, other)
	}
	out := Zeros(m.rows, m.cols)
	for i := range m.data {
		out.data[i] = m.data[i] * other.data[i]
	}
	return out, nil
}

// DotMultiply returns the matrix product m · other.
//
// Requires m.Cols() == other.Rows(); the result has shape (m.Rows(), other.Cols()).
// Computed with the plain triple loop, O(rows·cols·inner).
func (m *Matrix) DotMultiply(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, shapeErrorf("DotMultiply", m, other)
	}
	out := Zeros(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.data[i*m.cols+k] * other.data[k*other.cols+j]
			}
			out.data[i*other.cols+j] = sum
		}
	}
	return out, nil
}

// Transpose returns the (cols, rows) matrix with result[j,i] = m[i,j].
func (m *Matrix) Transpose() *Matrix {
	out := Zeros(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Map applies f to every element and returns a matrix of the same shape.
func (m *Matrix) Map(f func(float64) float64) *Matrix {
	out := Zeros(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Scale multiplies every element by k.
func (m *Matrix) Scale(k float64) *Matrix {
	return m.Map(func(v float64) float64 { return v * k })
}
