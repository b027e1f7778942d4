package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cemderv/cerlib-sub001/shading"
)

// writer generates GLSL source for one entry point. It is an
// indent-aware text buffer; minified output suppresses indentation and
// every newline except the one terminating the version directive.
type writer struct {
	ast     *shading.AST
	entry   *shading.FunctionDecl
	version Version
	minify  bool

	params []*shading.ShaderParamDecl

	out    strings.Builder
	indent int

	// tempCount numbers the hoisted temporaries of the code block
	// currently being written.
	tempCount int

	// hoisted maps struct constructor calls to the temporary each was
	// hoisted into.
	hoisted map[*shading.StructCtorCall]string

	// entryTerminalReturn is the return statement closing the entry
	// point's body. Every other entry return needs an explicit
	// `return;` after the output assignment so control flow matches
	// the source.
	entryTerminalReturn *shading.ReturnStmt
}

func newWriter(ast *shading.AST, entry *shading.FunctionDecl, version Version, minify bool) *writer {
	w := &writer{
		ast:     ast,
		entry:   entry,
		version: version,
		minify:  minify,
		params:  shading.AccessedParams(ast, entry),
		hoisted: make(map[*shading.StructCtorCall]string),
	}
	if stmts := entry.Body.Stmts; len(stmts) > 0 {
		if ret, ok := stmts[len(stmts)-1].(*shading.ReturnStmt); ok {
			w.entryTerminalReturn = ret
		}
	}
	return w
}

func (w *writer) String() string {
	return w.out.String()
}

// writeModule emits the complete fragment shader.
func (w *writer) writeModule() error {
	w.writeVersionDirective()
	w.writePrecisionQualifiers()
	w.writeUniforms()
	w.writeVaryings()

	consts, structs, functions := w.collectReachable()

	for _, c := range consts {
		w.writeConstGlobal(c)
	}
	for _, st := range structs {
		w.writeStruct(st)
	}
	for _, fn := range functions {
		if err := w.writeFunction(fn); err != nil {
			return err
		}
	}
	return w.writeEntryPoint()
}

// writeVersionDirective terminates with a real newline even in minified
// output, since GLSL requires the directive on its own line.
func (w *writer) writeVersionDirective() {
	w.out.WriteString("#version " + w.version.String() + "\n")
}

func (w *writer) writePrecisionQualifiers() {
	w.writeLine("precision highp float;")
	w.writeLine("precision highp sampler2D;")
}

// writeUniforms emits the implicit sprite sampler, then the scalar
// parameters and finally the image parameters.
func (w *writer) writeUniforms() {
	w.writeLine("uniform sampler2D SpriteImage;")

	for _, p := range w.params {
		if p.IsResource() {
			w.writeLine("uniform sampler2D %s;", escapeName(p.Name))
		} else {
			w.writeLine("uniform %s %s%s;", typeName(p.Type), escapeName(p.Name), arraySuffix(p.Type))
		}
	}
}

func (w *writer) writeVaryings() {
	w.writeLine("in vec4 cer_v2f_Color;")
	w.writeLine("in vec2 cer_v2f_UV;")
	w.writeLine("out vec4 cer_OutColor;")
}

// collectReachable gathers the top-level declarations the entry point
// transitively references: constants and structs in declaration order,
// functions in callee-before-caller order with the entry point
// excluded.
func (w *writer) collectReachable() ([]*shading.VarDecl, []*shading.StructDecl, []*shading.FunctionDecl) {
	used := make(map[shading.Decl]struct{})
	var callOrder []*shading.FunctionDecl

	var visit func(fn *shading.FunctionDecl)
	visit = func(fn *shading.FunctionDecl) {
		if _, seen := used[fn]; seen {
			return
		}
		used[fn] = struct{}{}

		markType := func(t shading.Type) {
			if st, ok := t.(*shading.StructDecl); ok {
				used[st] = struct{}{}
			}
		}
		markType(fn.ReturnType)
		for _, param := range fn.Params {
			markType(param.Type)
		}

		if fn.Body != nil {
			shading.WalkBlock(fn.Body, func(e shading.Expr) {
				switch expr := e.(type) {
				case *shading.SymAccessExpr:
					if expr.Decl != nil {
						used[expr.Decl] = struct{}{}
					}
				case *shading.FunctionCallExpr:
					if expr.Function != nil && expr.Function.Body != nil {
						visit(expr.Function)
					}
				case *shading.StructCtorCall:
					if expr.Struct != nil {
						used[expr.Struct] = struct{}{}
					}
				}
			})
		}
		if fn != w.entry {
			callOrder = append(callOrder, fn)
		}
	}
	visit(w.entry)

	var consts []*shading.VarDecl
	var structs []*shading.StructDecl
	for _, decl := range w.ast.Decls {
		if _, ok := used[decl]; !ok {
			continue
		}
		switch d := decl.(type) {
		case *shading.VarDecl:
			consts = append(consts, d)
		case *shading.StructDecl:
			structs = append(structs, d)
		}
	}
	return consts, structs, callOrder
}

// writeConstGlobal emits a folded top-level constant.
func (w *writer) writeConstGlobal(d *shading.VarDecl) {
	w.writeLine("const %s %s = %s;", typeName(d.Type), escapeName(d.Name), w.formatConstant(d.FoldedValue))
}

func (w *writer) formatConstant(v *shading.ConstantValue) string {
	switch v.Kind {
	case shading.ConstantInt:
		return strconv.FormatInt(v.Int, 10)
	case shading.ConstantBool:
		return strconv.FormatBool(v.Bool)
	case shading.ConstantFloat:
		return formatFloat(v.Float)
	case shading.ConstantVector:
		parts := make([]string, len(v.Vector))
		for i, c := range v.Vector {
			parts[i] = formatFloat(c)
		}
		return fmt.Sprintf("vec%d(%s)", len(v.Vector), strings.Join(parts, ", "))
	default:
		return ""
	}
}

// formatFloat renders a float literal with the `f` suffix the target
// profile expects.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "f"
}

func (w *writer) writeStruct(d *shading.StructDecl) {
	w.writeLine("struct %s {", escapeName(d.Name))
	w.pushIndent()
	for _, field := range d.Fields {
		w.writeLine("%s %s;", typeName(field.Type), escapeName(field.Name))
	}
	w.popIndent()
	w.writeLine("};")
}

func (w *writer) writeFunction(fn *shading.FunctionDecl) error {
	var params []string
	for _, p := range fn.Params {
		params = append(params, typeName(p.Type)+" "+escapeName(p.Name)+arraySuffix(p.Type))
	}
	w.writeLine("%s %s(%s) {", typeName(fn.ReturnType), escapeName(fn.Name), strings.Join(params, ", "))
	w.pushIndent()
	if err := w.writeBlock(fn.Body, false); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("}")
	return nil
}

// writeEntryPoint emits the shader function as `void main()`. Return
// statements become assignments to cer_OutColor; shaders returning a
// struct write the struct's last field.
func (w *writer) writeEntryPoint() error {
	w.writeLine("void main() {")
	w.pushIndent()

	if len(w.entry.Params) == 1 {
		w.writeInputBinding(w.entry.Params[0])
	}

	if err := w.writeBlock(w.entry.Body, true); err != nil {
		return err
	}

	w.popIndent()
	w.writeLine("}")
	return nil
}

// writeInputBinding declares the entry point's Input struct as a local
// and fills it from the interpolated sprite attributes: Vector4 fields
// take the vertex color, Vector2 fields the UV, anything else its zero
// value.
func (w *writer) writeInputBinding(param *shading.FunctionParamDecl) {
	st := param.Type.(*shading.StructDecl)
	w.writeLine("%s %s;", escapeName(st.Name), escapeName(param.Name))

	for _, field := range st.Fields {
		value := ""
		switch {
		case field.Type == shading.Vector4Type:
			value = "cer_v2f_Color"
		case field.Type == shading.Vector2Type:
			value = "cer_v2f_UV"
		case field.Type == shading.FloatType:
			value = "0.0f"
		case field.Type == shading.IntType:
			value = "0"
		case field.Type == shading.BoolType:
			value = "false"
		case shading.IsVectorType(field.Type):
			value = typeName(field.Type) + "(0.0f)"
		case shading.IsMatrixType(field.Type):
			value = "mat4(1.0f)"
		}
		if value != "" {
			w.writeLine("%s.%s = %s;", escapeName(param.Name), escapeName(field.Name), value)
		}
	}
}

// Line and indentation helpers

// writeLine appends one formatted line. In minified mode the line is
// appended without indentation and terminated by a single space
// instead of a newline.
func (w *writer) writeLine(format string, args ...any) {
	if !w.minify {
		for i := 0; i < w.indent; i++ {
			w.out.WriteString("  ")
		}
	}
	fmt.Fprintf(&w.out, format, args...)
	if w.minify {
		w.out.WriteByte(' ')
	} else {
		w.out.WriteByte('\n')
	}
}

func (w *writer) pushIndent() { w.indent++ }

func (w *writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
