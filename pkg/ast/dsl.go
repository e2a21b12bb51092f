package ast

// Compact builders for tests and embedding hosts.

// Paths and values.

func P(segments ...string) *Path {
	return NewPath(segments...)
}

func Sym(value rune) *SymbolLit {
	return NewSymbolLit(value)
}

func Str(value string) *StringLit {
	return NewStringLit(value)
}

func Rd(segments ...string) *Read {
	return NewRead(NewPath(segments...))
}

// Guards.

func True() *BoolLit  { return NewBoolLit(true) }
func False() *BoolLit { return NewBoolLit(false) }

func NotG(operand GuardExpr) *Not {
	return NewNot(operand)
}

func AndG(left, right GuardExpr) *And {
	return NewAnd(left, right)
}

func OrG(left, right GuardExpr) *Or {
	return NewOr(left, right)
}

func EqV(left, right ValueExpr) *Eq {
	return NewEq(left, right)
}

func LeV(left, right ValueExpr) *Le {
	return NewLe(left, right)
}

// Statements.

func Left(segments ...string) *MoveLeft {
	return NewMoveLeft(NewPath(segments...))
}

func Right(segments ...string) *MoveRight {
	return NewMoveRight(NewPath(segments...))
}

func Wr(tape *Path, value ValueExpr) *Write {
	return NewWrite(tape, value)
}

func WrStr(tape *Path, value string) *WriteString {
	return NewWriteString(tape, value)
}

func Var(name string, value ValueExpr) *VarDecl {
	return NewVarDecl(name, value)
}

func Tape(name, content string) *TapeDecl {
	return NewTapeDecl(name, content)
}

func Field(name string, kind ParamKind) *FieldDecl {
	return NewFieldDecl(name, kind)
}

func Struct(name string, fields ...*FieldDecl) *StructDecl {
	return NewStructDecl(name, fields)
}

func Obj(name, structName string, args ...Argument) *ObjDecl {
	return NewObjDecl(name, structName, args)
}

func Prm(name string, kind ParamKind) *Param {
	return NewParam(name, kind)
}

func Fn(name string, params []*Param, body ...Statement) *FuncDecl {
	return NewFuncDecl(name, params, NewBlock(body))
}

func CallN(name string, args ...Argument) *Call {
	return NewCall(name, args)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func Branch(guard GuardExpr, body ...Statement) *IfBranch {
	return NewIfBranch(guard, NewBlock(body))
}

func IfS(branches ...*IfBranch) *If {
	return NewIf(branches, nil)
}

func IfElse(elseBody *Block, branches ...*IfBranch) *If {
	return NewIf(branches, elseBody)
}

func WhileS(guard GuardExpr, body ...Statement) *While {
	return NewWhile(guard, NewBlock(body))
}

func Acc() *Accept { return NewAccept() }
func Rej() *Reject { return NewReject() }

func PrintR(segments ...string) *PrintRead {
	return NewPrintRead(NewPath(segments...))
}

func PrintS(value string) *PrintString {
	return NewPrintString(value)
}

func Dump(segments ...string) *DumpTape {
	return NewDumpTape(NewPath(segments...))
}

func Prog(body ...Statement) *Program {
	return NewProgram(body, nil)
}
