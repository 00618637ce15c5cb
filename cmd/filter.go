package cmd

import (
	"fmt"

	"github.com/s0up4200/groupsio/config"
	"github.com/s0up4200/groupsio/filter"
	"github.com/s0up4200/groupsio/groupsio"
)

// presets holds the compiled filter presets from config
var presets = filter.NewManager()

// loadPresets compiles every configured preset so typos fail at startup
func loadPresets(fcfg config.FilterConfig) error {
	if err := presets.RegisterFilters(fcfg.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}
	return nil
}

// resolveFilter determines the member filter to use. A nil filter matches
// every member.
func resolveFilter(fcfg config.FilterConfig) (filter.Filter, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		f, err := filter.CompileFilter(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		if f, ok := presets.GetFilter(preset); ok {
			return f, nil
		}
		return nil, fmt.Errorf("preset '%s' not found in config", preset)
	}

	if fcfg.DefaultExpression != "" {
		f, err := filter.CompileFilter(fcfg.DefaultExpression)
		if err != nil {
			return nil, fmt.Errorf("invalid default filter expression: %w", err)
		}
		return f, nil
	}

	return nil, nil
}

// describeFilter returns the expression of f for logging
func describeFilter(f filter.Filter) string {
	if cf, ok := f.(filter.CompiledFilter); ok {
		return cf.Expression()
	}
	return "<all>"
}

func applyFilter(f filter.Filter, members []groupsio.Subscription) ([]groupsio.Subscription, error) {
	if f == nil {
		return members, nil
	}
	return filter.Apply(f, members)
}
