package block

import (
	"fmt"
	"strconv"
	"strings"
)

// Expand produces the final source text for a block: one constant
// declaration per binding, in binding order, followed by the body and a
// trailing newline. The body's syntax is never validated here; malformed
// source surfaces through the solver's exit code and stderr.
func Expand(body string, vars []VarBinding) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString("#const ")
		b.WriteString(v.Name)
		b.WriteString(" = ")
		b.WriteString(FormatValue(v.Value))
		b.WriteString(".\n")
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatValue is the canonical stringification for binding values:
// integers and floats as numeric literals, booleans as true/false,
// strings and symbols verbatim. The solver requires syntactically valid
// declaration values; whether a rendered value parses is its concern.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
