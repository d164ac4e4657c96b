package subgraph

import (
	"strconv"
	"strings"
)

// Expr is a node in a subgraph where-filter expression. The subgraph's
// filter dialect requires that an or-group combined with sibling
// conditions be wrapped in its own object, so filters are built as a
// tree and serialized recursively rather than concatenated as strings.
type Expr interface {
	render(b *strings.Builder)
}

// Cond is a leaf condition. Value must already be rendered in the
// subgraph's value syntax (quoted string, number, null, or a nested
// object for entity filters like registrationFile_).
type Cond struct {
	Field string
	Value string
}

func (c Cond) render(b *strings.Builder) {
	b.WriteString(c.Field)
	b.WriteString(": ")
	b.WriteString(c.Value)
}

type group struct {
	op    string
	exprs []Expr
}

func (g group) render(b *strings.Builder) {
	b.WriteString(g.op)
	b.WriteString(": [")
	for i, e := range g.exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{")
		e.render(b)
		b.WriteString("}")
	}
	b.WriteString("]")
}

// And combines conditions so that all must hold.
func And(exprs ...Expr) Expr {
	return group{op: "and", exprs: exprs}
}

// Or combines conditions so that at least one must hold.
func Or(exprs ...Expr) Expr {
	return group{op: "or", exprs: exprs}
}

// Quote renders s as a subgraph string literal. Backslashes and double
// quotes are escaped and control characters dropped, so user input
// cannot inject additional query syntax.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Filters holds the user-selectable agent list filters.
type Filters struct {
	// Search matches case-insensitively against the registration name.
	Search string
	// HasReviews keeps only agents with at least one feedback entry.
	HasReviews bool
	// HasEndpoint keeps only agents exposing an MCP or A2A endpoint.
	HasEndpoint bool
}

// Active reports whether any filter condition is set. When false the
// unfiltered global counters are sufficient for pagination.
func (f Filters) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.HasReviews || f.HasEndpoint
}

// expr builds the filter tree: zero conditions yield nil, a single
// condition stays unwrapped, and two or more are joined in an and-group.
// The endpoint or-group always stays a single and-sibling.
func (f Filters) expr() Expr {
	var conds []Expr
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, Cond{
			Field: "registrationFile_",
			Value: "{name_contains_nocase: " + Quote(s) + "}",
		})
	}
	if f.HasReviews {
		conds = append(conds, Cond{Field: "totalFeedback_gt", Value: "0"})
	}
	if f.HasEndpoint {
		conds = append(conds, Or(
			Cond{Field: "registrationFile_", Value: "{mcpEndpoint_not: null}"},
			Cond{Field: "registrationFile_", Value: "{a2aEndpoint_not: null}"},
		))
	}
	switch len(conds) {
	case 0:
		return nil
	case 1:
		return conds[0]
	default:
		return And(conds...)
	}
}

// Where renders the where argument for an agents query, including the
// leading comma so it can be appended to the pagination arguments.
// Unfiltered queries render no where clause at all.
func (f Filters) Where() string {
	e := f.expr()
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(", where: {")
	e.render(&b)
	b.WriteString("}")
	return b.String()
}

// listArgs renders the pagination and ordering arguments shared by every
// agent list query. Ordering by creation time descending is what makes
// adjacent skip values paginate without overlap or gaps.
func listArgs(first, skip int) string {
	return "first: " + strconv.Itoa(first) +
		", skip: " + strconv.Itoa(skip) +
		", orderBy: createdAt, orderDirection: desc"
}
