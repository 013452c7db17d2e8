package infrastructure

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime/debug"
	"sync"

	"resume-studio/pkg/helpers"

	"github.com/aymerick/raymond"
	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
)

// builtinHelpers are registered globally by raymond itself.
var builtinHelpers = map[string]bool{
	"if": true, "unless": true, "with": true, "each": true,
	"log": true, "lookup": true, "equal": true,
}

// RenderError carries what went wrong inside the template engine along
// with the stack captured at the failure point.
type RenderError struct {
	Message string
	Stack   string
}

func (e *RenderError) Error() string { return e.Message }

// HandlebarsRenderer compiles Handlebars markup against its own helper
// set. Compiled templates are cached by content hash; every Render call
// evaluates from scratch.
type HandlebarsRenderer struct {
	helpers map[string]interface{}

	mu    sync.RWMutex
	cache map[string]*raymond.Template
}

func NewHandlebarsRenderer(set *helpers.Set) *HandlebarsRenderer {
	if set == nil {
		set = helpers.NewSet()
	}
	return &HandlebarsRenderer{helpers: set.Funcs(), cache: map[string]*raymond.Template{}}
}

// Render compiles source (or reuses a cached compilation) and evaluates it
// against data. Engine errors and panics both come back as *RenderError.
func (r *HandlebarsRenderer) Render(source string, data map[string]interface{}) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = &RenderError{Message: fmt.Sprintf("template evaluation panicked: %v", rec), Stack: string(debug.Stack())}
		}
	}()

	tpl, err := r.compile(source)
	if err != nil {
		return "", &RenderError{Message: fmt.Sprintf("template compilation failed: %v", err), Stack: string(debug.Stack())}
	}

	out, err = tpl.Exec(data)
	if err != nil {
		return "", &RenderError{Message: fmt.Sprintf("template evaluation failed: %v", err), Stack: string(debug.Stack())}
	}
	return out, nil
}

func (r *HandlebarsRenderer) compile(source string) (*raymond.Template, error) {
	sum := sha256.Sum256([]byte(source))
	key := hex.EncodeToString(sum[:])

	r.mu.RLock()
	tpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	if err := r.checkHelpers(program); err != nil {
		return nil, err
	}
	tpl, err = raymond.Parse(source)
	if err != nil {
		return nil, err
	}
	tpl.RegisterHelpers(r.helpers)

	r.mu.Lock()
	r.cache[key] = tpl
	r.mu.Unlock()
	return tpl, nil
}

// checkHelpers rejects calls to helpers that are not registered. raymond
// would otherwise resolve {{name arg}} as a plain field and render nothing.
func (r *HandlebarsRenderer) checkHelpers(program *ast.Program) error {
	if program == nil {
		return nil
	}
	for _, node := range program.Body {
		switch n := node.(type) {
		case *ast.MustacheStatement:
			if err := r.checkExpression(n.Expression); err != nil {
				return err
			}
		case *ast.BlockStatement:
			if err := r.checkExpression(n.Expression); err != nil {
				return err
			}
			if err := r.checkHelpers(n.Program); err != nil {
				return err
			}
			if err := r.checkHelpers(n.Inverse); err != nil {
				return err
			}
		case *ast.PartialStatement:
			if err := r.checkParams(n.Params, n.Hash); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *HandlebarsRenderer) checkExpression(expr *ast.Expression) error {
	if expr == nil {
		return nil
	}
	if len(expr.Params) > 0 || (expr.Hash != nil && len(expr.Hash.Pairs) > 0) {
		name := expr.HelperName()
		if _, ok := r.helpers[name]; name != "" && !ok && !builtinHelpers[name] {
			return fmt.Errorf("unknown helper %q at line %d", name, expr.Line)
		}
	}
	return r.checkParams(expr.Params, expr.Hash)
}

func (r *HandlebarsRenderer) checkParams(params []ast.Node, hash *ast.Hash) error {
	nodes := append([]ast.Node(nil), params...)
	if hash != nil {
		for _, pair := range hash.Pairs {
			nodes = append(nodes, pair.Val)
		}
	}
	for _, node := range nodes {
		var err error
		switch n := node.(type) {
		case *ast.SubExpression:
			err = r.checkExpression(n.Expression)
		case *ast.Expression:
			err = r.checkExpression(n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
