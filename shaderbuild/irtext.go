package shaderbuild

import (
	"fmt"
	"strings"
)

// RenderGLSL renders the IR function as GLSL source. Emitted value
// expressions and call results become single-assignment temporaries;
// pointer expressions render as the variable name they address.
func RenderGLSL(fn *Function) string {
	var b strings.Builder
	b.WriteString(fn.Return)
	b.WriteByte(' ')
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteString(") {\n")
	for _, l := range fn.Locals {
		fmt.Fprintf(&b, "    %s %s;\n", l.Type, l.Name)
	}

	// names maps each expression handle to the GLSL term it reads as.
	names := make([]string, len(fn.Exprs))
	for h, e := range fn.Exprs {
		switch e.Kind {
		case ExprLocalVariable:
			names[h] = fn.Locals[e.Local].Name
		case ExprFunctionArgument:
			names[h] = fn.Params[e.Arg].Name
		case ExprLiteral:
			names[h] = fmt.Sprintf("%d", e.Literal)
		}
	}

	temp := func(h ExprHandle) string {
		if names[h] == "" {
			names[h] = fmt.Sprintf("_e%d", h)
		}
		return names[h]
	}

	for _, s := range fn.Body {
		switch s.Kind {
		case StmtEmit:
			for h := s.Start; h < s.End; h++ {
				e := fn.Exprs[h]
				var rhs string
				switch e.Kind {
				case ExprLoad:
					rhs = names[e.Pointer]
				case ExprMath:
					switch e.Fun {
					case MathAbs:
						rhs = fmt.Sprintf("abs(%s)", names[e.A])
					case MathNegate:
						rhs = fmt.Sprintf("-(%s)", names[e.A])
					case MathMin:
						rhs = fmt.Sprintf("min(%s, %s)", names[e.A], names[e.B])
					case MathMax:
						rhs = fmt.Sprintf("max(%s, %s)", names[e.A], names[e.B])
					}
				}
				fmt.Fprintf(&b, "    int %s = %s;\n", temp(h), rhs)
			}
		case StmtCall:
			args := make([]string, len(s.Args))
			for i, a := range s.Args {
				args[i] = names[a]
			}
			fmt.Fprintf(&b, "    int %s = %s(%s);\n", temp(s.Result), s.Function, strings.Join(args, ", "))
		case StmtStore:
			fmt.Fprintf(&b, "    %s = %s;\n", names[s.Pointer], names[s.Value])
		case StmtReturn:
			fmt.Fprintf(&b, "    return %s;\n", names[s.Value])
		}
	}
	b.WriteString("}\n")
	return b.String()
}
