package kernel

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DataType represents the precision of numerical data in generated
// kernels.
type DataType int

const (
	Float32 DataType = iota + 1
	Float64
)

func (t DataType) String() string {
	switch t {
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// generatePreamble renders the kernel preamble: scalar type
// definitions, the zero constant, and any registered static
// tabulation matrices.
func (b *Builder) generatePreamble() string {
	var sb strings.Builder

	floatSuffix := ""
	if b.floatType == Float32 {
		floatSuffix = "f"
	}
	sb.WriteString(fmt.Sprintf("typedef %s real_t;\n", b.floatType))
	sb.WriteString(fmt.Sprintf("#define REAL_ZERO 0.0%s\n", floatSuffix))
	sb.WriteString("\n")

	if len(b.matrixOrder) > 0 {
		sb.WriteString("// Static tabulation matrices\n")
		for _, name := range b.matrixOrder {
			sb.WriteString(b.formatStaticMatrix(name, b.staticMatrices[name]))
		}
	}

	return sb.String()
}

// formatStaticMatrix formats a single matrix as a static C array.
func (b *Builder) formatStaticMatrix(name string, m mat.Matrix) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("const %s %s[%d][%d] = {\n", b.floatType, name, rows, cols))

	for i := 0; i < rows; i++ {
		sb.WriteString("    {")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			val := m.At(i, j)
			if b.floatType == Float32 {
				sb.WriteString(fmt.Sprintf("%.7ef", val))
			} else {
				sb.WriteString(fmt.Sprintf("%.15e", val))
			}
		}
		sb.WriteString("}")
		if i < rows-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("};\n\n")

	return sb.String()
}
