package filter

import (
	"context"

	"github.com/s0up4200/groupsio/groupsio"
)

// Filter decides whether a member matches
type Filter interface {
	// Evaluate checks if a member matches the filter criteria
	Evaluate(member groupsio.Subscription) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchEvaluator evaluates several named filters against the same members
type BatchEvaluator interface {
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, members []groupsio.Subscription) (map[string][]groupsio.Subscription, error)
}
