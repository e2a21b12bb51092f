package ast

// Statements

type MoveLeft struct {
	nodeImpl
	statementMarker

	Tape *Path `json:"tape"`
}

func NewMoveLeft(tape *Path) *MoveLeft {
	return &MoveLeft{nodeImpl: newNodeImpl(NodeMoveLeft), Tape: tape}
}

type MoveRight struct {
	nodeImpl
	statementMarker

	Tape *Path `json:"tape"`
}

func NewMoveRight(tape *Path) *MoveRight {
	return &MoveRight{nodeImpl: newNodeImpl(NodeMoveRight), Tape: tape}
}

// Write replaces the symbol under the tape's head, leaving the head in place.
type Write struct {
	nodeImpl
	statementMarker

	Tape  *Path     `json:"tape"`
	Value ValueExpr `json:"value"`
}

func NewWrite(tape *Path, value ValueExpr) *Write {
	return &Write{nodeImpl: newNodeImpl(NodeWrite), Tape: tape, Value: value}
}

// WriteString writes each symbol of Value in order, moving right between
// writes; the head does not move after the final symbol.
type WriteString struct {
	nodeImpl
	statementMarker

	Tape  *Path  `json:"tape"`
	Value string `json:"value"`
}

func NewWriteString(tape *Path, value string) *WriteString {
	return &WriteString{nodeImpl: newNodeImpl(NodeWriteString), Tape: tape, Value: value}
}

type VarDecl struct {
	nodeImpl
	statementMarker

	Name  string    `json:"name"`
	Value ValueExpr `json:"value"`
}

func NewVarDecl(name string, value ValueExpr) *VarDecl {
	return &VarDecl{nodeImpl: newNodeImpl(NodeVarDecl), Name: name, Value: value}
}

type TapeDecl struct {
	nodeImpl
	statementMarker

	Name    string `json:"name"`
	Content string `json:"content"`
}

func NewTapeDecl(name, content string) *TapeDecl {
	return &TapeDecl{nodeImpl: newNodeImpl(NodeTapeDecl), Name: name, Content: content}
}

type FieldDecl struct {
	nodeImpl

	Name string    `json:"name"`
	Kind ParamKind `json:"kind"`
}

func NewFieldDecl(name string, kind ParamKind) *FieldDecl {
	return &FieldDecl{nodeImpl: newNodeImpl(NodeFieldDecl), Name: name, Kind: kind}
}

type StructDecl struct {
	nodeImpl
	statementMarker

	Name   string       `json:"name"`
	Fields []*FieldDecl `json:"fields"`
}

func NewStructDecl(name string, fields []*FieldDecl) *StructDecl {
	return &StructDecl{nodeImpl: newNodeImpl(NodeStructDecl), Name: name, Fields: fields}
}

// ObjDecl constructs a struct instance, binding constructor arguments to
// fields positionally.
type ObjDecl struct {
	nodeImpl
	statementMarker

	Name   string     `json:"name"`
	Struct string     `json:"struct"`
	Args   []Argument `json:"args"`
}

func NewObjDecl(name, structName string, args []Argument) *ObjDecl {
	return &ObjDecl{nodeImpl: newNodeImpl(NodeObjDecl), Name: name, Struct: structName, Args: args}
}

type Param struct {
	nodeImpl

	Name string    `json:"name"`
	Kind ParamKind `json:"kind"`
}

func NewParam(name string, kind ParamKind) *Param {
	return &Param{nodeImpl: newNodeImpl(NodeParam), Name: name, Kind: kind}
}

type FuncDecl struct {
	nodeImpl
	statementMarker

	Name   string   `json:"name"`
	Params []*Param `json:"params"`
	Body   *Block   `json:"body"`
}

func NewFuncDecl(name string, params []*Param, body *Block) *FuncDecl {
	return &FuncDecl{nodeImpl: newNodeImpl(NodeFuncDecl), Name: name, Params: params, Body: body}
}

type Call struct {
	nodeImpl
	statementMarker

	Name string     `json:"name"`
	Args []Argument `json:"args"`
}

func NewCall(name string, args []Argument) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Name: name, Args: args}
}

// Block runs its statements in order; a halt or error stops the remainder.
type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

type IfBranch struct {
	nodeImpl

	Guard GuardExpr `json:"guard"`
	Body  *Block    `json:"body"`
}

func NewIfBranch(guard GuardExpr, body *Block) *IfBranch {
	return &IfBranch{nodeImpl: newNodeImpl(NodeIfBranch), Guard: guard, Body: body}
}

// If executes the body of the first branch whose guard is true; Else (which
// may be nil) runs when no guard matches.
type If struct {
	nodeImpl
	statementMarker

	Branches []*IfBranch `json:"branches"`
	Else     *Block      `json:"else,omitempty"`
}

func NewIf(branches []*IfBranch, elseBody *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Branches: branches, Else: elseBody}
}

type While struct {
	nodeImpl
	statementMarker

	Guard GuardExpr `json:"guard"`
	Body  *Block    `json:"body"`
}

func NewWhile(guard GuardExpr, body *Block) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Guard: guard, Body: body}
}

type Accept struct {
	nodeImpl
	statementMarker
}

func NewAccept() *Accept {
	return &Accept{nodeImpl: newNodeImpl(NodeAccept)}
}

type Reject struct {
	nodeImpl
	statementMarker
}

func NewReject() *Reject {
	return &Reject{nodeImpl: newNodeImpl(NodeReject)}
}

type PrintRead struct {
	nodeImpl
	statementMarker

	Tape *Path `json:"tape"`
}

func NewPrintRead(tape *Path) *PrintRead {
	return &PrintRead{nodeImpl: newNodeImpl(NodePrintRead), Tape: tape}
}

type PrintString struct {
	nodeImpl
	statementMarker

	Value string `json:"value"`
}

func NewPrintString(value string) *PrintString {
	return &PrintString{nodeImpl: newNodeImpl(NodePrintString), Value: value}
}

// DumpTape appends the tape's full rendered contents to the output log.
type DumpTape struct {
	nodeImpl
	statementMarker

	Tape *Path `json:"tape"`
}

func NewDumpTape(tape *Path) *DumpTape {
	return &DumpTape{nodeImpl: newNodeImpl(NodeDumpTape), Tape: tape}
}

// Program root

type ImportStatement struct {
	nodeImpl
	statementMarker

	Path string `json:"path"`
}

func NewImportStatement(path string) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Path: path}
}

type Program struct {
	nodeImpl

	Imports []*ImportStatement `json:"imports"`
	Body    []Statement        `json:"body"`
}

func NewProgram(body []Statement, imports []*ImportStatement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Imports: imports, Body: body}
}
