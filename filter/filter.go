package filter

import (
	"github.com/s0up4200/groupsio/groupsio"
)

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the members that match f, in their original order. The first
// evaluation failure aborts the walk.
func Apply(f Filter, members []groupsio.Subscription) ([]groupsio.Subscription, error) {
	matches := make([]groupsio.Subscription, 0, len(members))
	for _, m := range members {
		ok, err := f.Evaluate(m)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// FilterMembers compiles expression and applies it to members. An empty
// expression matches every member.
func FilterMembers(expression string, members []groupsio.Subscription) ([]groupsio.Subscription, error) {
	if expression == "" {
		return members, nil
	}
	f, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	return Apply(f, members)
}
