package token

// VariableNode is implemented by every assignable variable-shaped node
// (SimpleVar, Const, ListVar, MatrixVar). The tree builder's absorb
// pass uses this marker, rather than a type switch over every concrete
// variable type, to recognize the "Variable" attachment Kind.
type VariableNode interface {
	Node
	variableMarker()
}

func (v *SimpleVar) variableMarker()  {}
func (c *Const) variableMarker()      {}
func (l *ListVar) variableMarker()    {}
func (m *MatrixVar) variableMarker()  {}
