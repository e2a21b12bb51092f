package ast

type NodeType string

const (
	NodeProgram         NodeType = "Program"
	NodeImportStatement NodeType = "ImportStatement"
	NodeBlock           NodeType = "Block"
	NodeMoveLeft        NodeType = "MoveLeft"
	NodeMoveRight       NodeType = "MoveRight"
	NodeWrite           NodeType = "Write"
	NodeWriteString     NodeType = "WriteString"
	NodeVarDecl         NodeType = "VarDecl"
	NodeTapeDecl        NodeType = "TapeDecl"
	NodeStructDecl      NodeType = "StructDecl"
	NodeFieldDecl       NodeType = "FieldDecl"
	NodeObjDecl         NodeType = "ObjDecl"
	NodeFuncDecl        NodeType = "FuncDecl"
	NodeParam           NodeType = "Param"
	NodeCall            NodeType = "Call"
	NodeIf              NodeType = "If"
	NodeIfBranch        NodeType = "IfBranch"
	NodeWhile           NodeType = "While"
	NodeAccept          NodeType = "Accept"
	NodeReject          NodeType = "Reject"
	NodePrintRead       NodeType = "PrintRead"
	NodePrintString     NodeType = "PrintString"
	NodeDumpTape        NodeType = "DumpTape"
	NodeSymbolLit       NodeType = "SymbolLit"
	NodeStringLit       NodeType = "StringLit"
	NodeRead            NodeType = "Read"
	NodePath            NodeType = "Path"
	NodeBoolLit         NodeType = "BoolLit"
	NodeNot             NodeType = "Not"
	NodeAnd             NodeType = "And"
	NodeOr              NodeType = "Or"
	NodeEq              NodeType = "Eq"
	NodeLe              NodeType = "Le"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

// Statement is any executable form.
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// ValueExpr evaluates to a single Symbol.
type ValueExpr interface {
	Node
	valueExprNode()
}

type valueExprMarker struct{}

func (valueExprMarker) valueExprNode() {}

// GuardExpr evaluates to a boolean.
type GuardExpr interface {
	Node
	guardExprNode()
}

type guardExprMarker struct{}

func (guardExprMarker) guardExprNode() {}

// Argument is a call-site or constructor actual: any ValueExpr, or a
// StringLit requesting a freshly allocated tape.
type Argument interface {
	Node
	argumentNode()
}

type argumentMarker struct{}

func (argumentMarker) argumentNode() {}

// ParamKind is the declared kind of a formal parameter or struct field.
type ParamKind string

const (
	ParamSymbol ParamKind = "symbol"
	ParamTape   ParamKind = "tape"
)

// Paths

// Path names a variable, possibly reaching through object fields.
type Path struct {
	nodeImpl
	valueExprMarker
	argumentMarker

	Segments []string `json:"segments"`
}

func NewPath(segments ...string) *Path {
	return &Path{nodeImpl: newNodeImpl(NodePath), Segments: segments}
}

func (p *Path) String() string {
	out := ""
	for i, seg := range p.Segments {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}

// Value expressions

type SymbolLit struct {
	nodeImpl
	valueExprMarker
	argumentMarker

	Value rune `json:"value"`
}

func NewSymbolLit(value rune) *SymbolLit {
	return &SymbolLit{nodeImpl: newNodeImpl(NodeSymbolLit), Value: value}
}

// StringLit is a tape-content literal. As an Argument it binds a tape-kind
// formal to a fresh private tape.
type StringLit struct {
	nodeImpl
	argumentMarker

	Value string `json:"value"`
}

func NewStringLit(value string) *StringLit {
	return &StringLit{nodeImpl: newNodeImpl(NodeStringLit), Value: value}
}

// Read yields the symbol under the named tape's head.
type Read struct {
	nodeImpl
	valueExprMarker
	argumentMarker

	Tape *Path `json:"tape"`
}

func NewRead(tape *Path) *Read {
	return &Read{nodeImpl: newNodeImpl(NodeRead), Tape: tape}
}

// Guard expressions

type BoolLit struct {
	nodeImpl
	guardExprMarker

	Value bool `json:"value"`
}

func NewBoolLit(value bool) *BoolLit {
	return &BoolLit{nodeImpl: newNodeImpl(NodeBoolLit), Value: value}
}

type Not struct {
	nodeImpl
	guardExprMarker

	Operand GuardExpr `json:"operand"`
}

func NewNot(operand GuardExpr) *Not {
	return &Not{nodeImpl: newNodeImpl(NodeNot), Operand: operand}
}

type And struct {
	nodeImpl
	guardExprMarker

	Left  GuardExpr `json:"left"`
	Right GuardExpr `json:"right"`
}

func NewAnd(left, right GuardExpr) *And {
	return &And{nodeImpl: newNodeImpl(NodeAnd), Left: left, Right: right}
}

type Or struct {
	nodeImpl
	guardExprMarker

	Left  GuardExpr `json:"left"`
	Right GuardExpr `json:"right"`
}

func NewOr(left, right GuardExpr) *Or {
	return &Or{nodeImpl: newNodeImpl(NodeOr), Left: left, Right: right}
}

// Eq compares two evaluated symbols for equality.
type Eq struct {
	nodeImpl
	guardExprMarker

	Left  ValueExpr `json:"left"`
	Right ValueExpr `json:"right"`
}

func NewEq(left, right ValueExpr) *Eq {
	return &Eq{nodeImpl: newNodeImpl(NodeEq), Left: left, Right: right}
}

// Le compares two evaluated symbols by ordinal value.
type Le struct {
	nodeImpl
	guardExprMarker

	Left  ValueExpr `json:"left"`
	Right ValueExpr `json:"right"`
}

func NewLe(left, right ValueExpr) *Le {
	return &Le{nodeImpl: newNodeImpl(NodeLe), Left: left, Right: right}
}
