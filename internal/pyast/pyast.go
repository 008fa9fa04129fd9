// Package pyast provides thin constructors for the TGT AST node shapes
// named in spec.md §3 ("TGT AST (output)"). This is component C2: the
// builders do no validation and perform no rewriting — that is the
// transformer's job (internal/transform). The shape follows the same
// sealed-interface pattern used for internal/ast and, before it, the
// teacher's internal/js_ast: a struct wrapping an unexported marker
// interface, switched over by the unparser (internal/pyprinter).
package pyast

// Stmt and Expr wrap the node-kind union. TGT AST nodes carry no source
// location: spec.md §3 only requires locations on the SRC side for
// diagnostics, and the emitted file never needs to point back at SRC.
type Stmt struct{ Data SData }
type Expr struct{ Data EData }

type SData interface{ isStmt() }
type EData interface{ isExpr() }

func (*Module) isStmt()       {}
func (*Import) isStmt()       {}
func (*ImportFrom) isStmt()   {}
func (*FunctionDef) isStmt()  {}
func (*Assign) isStmt()       {}
func (*ExprStmt) isStmt()     {}
func (*Return) isStmt()       {}
func (*If) isStmt()           {}
func (*While) isStmt()        {}
func (*For) isStmt()          {}
func (*Break) isStmt()        {}
func (*Continue) isStmt()     {}
func (*Pass) isStmt()         {}

func (*Name) isExpr()      {}
func (*Constant) isExpr()  {}
func (*List) isExpr()      {}
func (*Dict) isExpr()      {}
func (*Tuple) isExpr()     {}
func (*Call) isExpr()      {}
func (*Attribute) isExpr() {}
func (*Subscript) isExpr() {}
func (*Slice) isExpr()     {}
func (*BinOp) isExpr()     {}
func (*UnaryOp) isExpr()   {}
func (*Compare) isExpr()   {}
func (*BoolOp) isExpr()    {}
func (*IfExp) isExpr()     {}
func (*NamedExpr) isExpr() {}

// ---- Module-level ----

type Module struct{ Body []Stmt }

type Import struct {
	Module string
	Alias  string
}

type ImportFrom struct {
	Module string
	Names  []string // already sorted by the import manager (C4)
}

// ---- Statements ----

type FunctionDef struct {
	Name string
	Args []string
	Body []Stmt
}

// Assign supports multiple targets only for destructuring-free chained
// assignment; the transformer never needs more than one target (spec.md
// §4.5's VariableDeclaration/AssignmentExpression contracts both assign a
// single name or subscript at a time) but the builder keeps the slice shape
// to match the TGT AST vocabulary given in spec.md §3 verbatim.
type Assign struct {
	Targets []Expr
	Value   Expr
}

type ExprStmt struct{ Value Expr }

type Return struct{ Value Expr } // Value.Data == nil is never emitted: bare return becomes Return(Name("JSUndefined"))

type If struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

type While struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

type Break struct{}
type Continue struct{}
type Pass struct{}

// ---- Expressions ----

type NameCtx int

const (
	Load NameCtx = iota
	Store
	Del
)

type Name struct {
	ID  string
	Ctx NameCtx
}

// ConstantKind distinguishes Python literal kinds so the printer can quote
// strings and format numbers/bools/None correctly without re-inspecting a
// Go interface{} value's dynamic type via reflection at print time.
type ConstantKind int

const (
	ConstNone ConstantKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstString
)

type Constant struct {
	Kind  ConstantKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

type List struct{ Elements []Expr }

type Dict struct {
	Keys   []Expr
	Values []Expr
}

type Tuple struct{ Elements []Expr }

type Keyword struct {
	Name  string // empty for positional-equivalent; TGT keywords are not used by this transformer's output but the shape is kept per spec.md §3
	Value Expr
}

type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

type Attribute struct {
	Value Expr
	Attr  string
	Ctx   NameCtx
}

type Subscript struct {
	Value Expr
	Slice Expr
	Ctx   NameCtx
}

// Slice models TGT's `a[lower:upper]` subscript form. Lower/Upper may be the
// nil Expr (absent bound).
type Slice struct {
	Lower Expr
	Upper Expr
}

type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mult
	Pow
)

type BinOp struct {
	Left  Expr
	Op    BinOpKind
	Right Expr
}

type UnaryOpKind int

const (
	Not UnaryOpKind = iota
	USub
	UAdd
)

type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
}

type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpLtE
	CmpGt
	CmpGtE
)

// Compare models a (non-chained) two-operand comparison; the transformer
// never emits TGT's chained-comparison form.
type Compare struct {
	Left  Expr
	Op    CmpOp
	Right Expr
}

type BoolOpKind int

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

type BoolOp struct {
	Op     BoolOpKind
	Values []Expr
}

type IfExp struct {
	Test   Expr
	Body   Expr
	Orelse Expr
}

// NamedExpr is TGT's inline named-assignment (`target := value`), the
// linchpin of single-evaluation short-circuit logical operators and switch
// discriminant caching (spec.md §4.5, §9).
type NamedExpr struct {
	Target Expr // always a Name(Store)
	Value  Expr
}

// ---- constructor helpers ----

func NameLoad(id string) Expr  { return Expr{&Name{ID: id, Ctx: Load}} }
func NameStore(id string) Expr { return Expr{&Name{ID: id, Ctx: Store}} }

func StrConst(s string) Expr   { return Expr{&Constant{Kind: ConstString, Str: s}} }
func IntConst(i int64) Expr    { return Expr{&Constant{Kind: ConstInt, Int: i}} }
func FloatConst(f float64) Expr { return Expr{&Constant{Kind: ConstFloat, Float: f}} }
func BoolConst(b bool) Expr    { return Expr{&Constant{Kind: ConstBool, Bool: b}} }
func NoneConst() Expr          { return Expr{&Constant{Kind: ConstNone}} }

func CallOf(fn Expr, args ...Expr) Expr {
	return Expr{&Call{Func: fn, Args: args}}
}

func CallName(name string, args ...Expr) Expr {
	return CallOf(NameLoad(name), args...)
}

func AttrLoad(value Expr, attr string) Expr {
	return Expr{&Attribute{Value: value, Attr: attr, Ctx: Load}}
}

func SubLoad(value, slice Expr) Expr {
	return Expr{&Subscript{Value: value, Slice: slice, Ctx: Load}}
}

func SubStore(value, slice Expr) Expr {
	return Expr{&Subscript{Value: value, Slice: slice, Ctx: Store}}
}

func AssignOne(target, value Expr) Stmt {
	return Stmt{&Assign{Targets: []Expr{target}, Value: value}}
}
