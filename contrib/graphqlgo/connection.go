package graphqlgo

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/graphql-go/graphql"

	dg "github.com/syssam/docgraph/contrib/graphql"
)

var connectionArgs = graphql.FieldConfigArgument{
	"after":  &graphql.ArgumentConfig{Type: graphql.String},
	"first":  &graphql.ArgumentConfig{Type: graphql.Int},
	"before": &graphql.ArgumentConfig{Type: graphql.String},
	"last":   &graphql.ArgumentConfig{Type: graphql.Int},
}

// connection returns the connection type of a node. Its edges and page
// information are read from the values built by Paginate.
func (t *Types) connection(c *dg.Connection) *graphql.Object {
	if obj, ok := t.conns[c]; ok {
		return obj
	}
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name:        c.Names.Edge,
		Description: "An edge in a connection.",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"node":   &graphql.Field{Type: t.object(c.Node)},
				"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			}
		}),
	})
	obj := graphql.NewObject(graphql.ObjectConfig{
		Name:        c.Names.Connection,
		Description: "A connection to a list of items.",
		Fields: graphql.Fields{
			"edges":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(edge))},
			"pageInfo": &graphql.Field{Type: graphql.NewNonNull(t.pageInfoType())},
		},
	})
	t.conns[c] = obj
	return obj
}

func (t *Types) pageInfoType() *graphql.Object {
	if t.pageInfo == nil {
		t.pageInfo = graphql.NewObject(graphql.ObjectConfig{
			Name:        dg.PageInfoType,
			Description: "Information about pagination in a connection.",
			Fields: graphql.Fields{
				"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
				"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
				"startCursor":     &graphql.Field{Type: graphql.String},
				"endCursor":       &graphql.Field{Type: graphql.String},
			},
		})
	}
	return t.pageInfo
}

// connectionResolver pages through the list held by the parent object.
func connectionResolver(f *dg.ObjectField) graphql.FieldResolveFn {
	resolve := valueResolver(f)
	return func(p graphql.ResolveParams) (any, error) {
		v, err := resolve(p)
		if err != nil || v == nil {
			return nil, err
		}
		items, err := toSlice(v)
		if err != nil {
			return nil, fmt.Errorf("graphqlgo: field %s: %w", f.Name, err)
		}
		args, err := pageArgs(p.Args)
		if err != nil {
			return nil, err
		}
		return Paginate(items, args), nil
	}
}

// PageArgs are the arguments of a connection field.
type PageArgs struct {
	After, Before string
	First, Last   *int
}

func pageArgs(args map[string]any) (PageArgs, error) {
	var pa PageArgs
	pa.After, _ = args["after"].(string)
	pa.Before, _ = args["before"].(string)
	for name, dst := range map[string]**int{"first": &pa.First, "last": &pa.Last} {
		if n, ok := args[name].(int); ok {
			if n < 0 {
				return pa, fmt.Errorf("graphqlgo: %q must be a non-negative integer", name)
			}
			*dst = &n
		}
	}
	return pa, nil
}

// Paginate returns the connection value of a page of items, using
// offset cursors.
func Paginate(items []any, args PageArgs) map[string]any {
	start, end := 0, len(items)
	if i, ok := decodeCursor(args.After); ok && i+1 > start {
		start = min(i+1, end)
	}
	if i, ok := decodeCursor(args.Before); ok && i < end {
		end = max(i, start)
	}
	if args.First != nil && start+*args.First < end {
		end = start + *args.First
	}
	if args.Last != nil && end-*args.Last > start {
		start = end - *args.Last
	}
	edges := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, map[string]any{"node": items[i], "cursor": encodeCursor(i)})
	}
	info := map[string]any{
		"hasNextPage":     end < len(items),
		"hasPreviousPage": start > 0,
		"startCursor":     nil,
		"endCursor":       nil,
	}
	if end > start {
		info["startCursor"] = encodeCursor(start)
		info["endCursor"] = encodeCursor(end - 1)
	}
	return map[string]any{"edges": edges, "pageInfo": info}
}

const cursorPrefix = "cursor:"

func encodeCursor(i int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(i)))
}

func decodeCursor(c string) (int, bool) {
	if c == "" {
		return 0, false
	}
	b, err := base64.StdEncoding.DecodeString(c)
	if err != nil {
		return 0, false
	}
	s, ok := strings.CutPrefix(string(b), cursorPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func toSlice(v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}
