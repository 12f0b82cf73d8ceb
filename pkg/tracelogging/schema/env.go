package schema

import (
	"go/constant"
	"go/token"
	"go/types"
	"sort"

	"github.com/pkg/errors"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
)

// Env folds description expressions to integer constants. Expressions are Go
// constant expressions evaluated in a scope holding the etw enumeration
// constants (etw.LevelInfo, etw.OutType(5), ...) and any named constants the
// Env was created with.
type Env struct {
	pkg  *types.Package
	fset *token.FileSet
}

// NewEnv returns an Env where each entry of consts is an untyped integer
// constant.
func NewEnv(consts map[string]int64) *Env {
	etwPkg := types.NewPackage("github.com/Microsoft/go-tracelogging/pkg/etw", "etw")
	for _, e := range []*catalog.Enum{catalog.Channels, catalog.Levels, catalog.Opcodes, catalog.InTypes, catalog.OutTypes} {
		declareEnum(etwPkg, e)
	}
	etwPkg.MarkComplete()

	pkg := types.NewPackage("tracelogging/description", "description")
	pkg.Scope().Insert(types.NewPkgName(token.NoPos, pkg, "etw", etwPkg))

	names := make([]string, 0, len(consts))
	for name := range consts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, name, types.Typ[types.UntypedInt], constant.MakeInt64(consts[name])))
	}
	return &Env{pkg: pkg, fset: token.NewFileSet()}
}

func declareEnum(pkg *types.Package, e *catalog.Enum) {
	// e.Type is "etw.Name".
	typeName := e.Type[len("etw."):]
	obj := types.NewTypeName(token.NoPos, pkg, typeName, nil)
	named := types.NewNamed(obj, types.Typ[types.Uint8], nil)
	pkg.Scope().Insert(obj)
	for _, n := range e.Names {
		pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, n.Ident, named, constant.MakeUint64(uint64(n.Value))))
	}
}

// Fold returns the value of expr if it is an integer constant expression that
// fits in 64 bits. Negative values are returned in two's complement form.
func (env *Env) Fold(expr string) (uint64, bool) {
	if env == nil {
		env = defaultEnv
	}
	tv, err := types.Eval(env.fset, env.pkg, token.NoPos, expr)
	if err != nil || tv.Value == nil {
		return 0, false
	}
	v := constant.ToInt(tv.Value)
	if v.Kind() != constant.Int {
		return 0, false
	}
	if u, exact := constant.Uint64Val(v); exact {
		return u, true
	}
	if i, exact := constant.Int64Val(v); exact {
		return uint64(i), true
	}
	return 0, false
}

// Resolve returns the value of expr, or an error if it is not a constant in
// this Env.
func (env *Env) Resolve(expr string) (uint64, error) {
	v, ok := env.Fold(expr)
	if !ok {
		return 0, errors.Errorf("cannot resolve %q to an integer constant", expr)
	}
	return v, nil
}

var defaultEnv = NewEnv(nil)
