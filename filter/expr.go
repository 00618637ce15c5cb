package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/groupsio/groupsio"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newFilterCache(size)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	cache *filterCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.lookup(expression); ok {
			return cached, nil
		}
	}

	// A zero member gives the checker the type of every variable.
	program, err := expr.Compile(expression,
		expr.Env(memberEnvironment(groupsio.Subscription{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.add(filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.reset()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// Evaluate runs the filter against one member
func (f *exprFilter) Evaluate(member groupsio.Subscription) (bool, error) {
	result, err := expr.Run(f.program, memberEnvironment(member))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Member:     member.Email,
			Err:        err,
		}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// helperFunctions extend the expr builtins. Case-insensitive string tests use
// the builtin lower() with the contains, startsWith and endsWith operators.
var helperFunctions = map[string]any{
	"daysSince": func(t time.Time) int {
		if t.IsZero() {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	},
	"daysAgo": func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	},
	"monthsAgo": func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	},
	"parseDate": func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	},
}

// memberEnvironment creates the evaluation environment for one member
func memberEnvironment(m groupsio.Subscription) map[string]any {
	env := make(map[string]any, 40)
	maps.Copy(env, helperFunctions)

	env["Member"] = m

	env["ID"] = m.ID
	env["UserID"] = m.UserID
	env["GroupID"] = m.GroupID
	env["GroupName"] = m.GroupName
	env["Email"] = m.Email
	env["Domain"] = emailDomain(m.Email)
	env["Name"] = m.FullName
	env["UserName"] = m.UserName
	env["Status"] = string(m.Status)
	env["UserStatus"] = string(m.UserStatus)
	env["PostStatus"] = m.PostStatus
	env["ModStatus"] = m.ModStatus
	env["EmailDelivery"] = m.EmailDelivery
	env["ApprovedPosts"] = m.ApprovedPosts
	env["Created"] = parseTimestamp(m.Created)
	env["Updated"] = parseTimestamp(m.Updated)

	env["IsPending"] = m.Status == groupsio.SubscriptionStatusPending
	env["IsBanned"] = m.Status == groupsio.SubscriptionStatusBanned
	env["IsBouncing"] = m.UserStatus.CanSendBounceProbe()
	env["IsUnconfirmed"] = m.UserStatus.CanSendConfirmationEmail()
	env["IsModerator"] = m.ModStatus != "" && m.ModStatus != "sub_modstatus_none"

	env["hasStatus"] = func(status string) bool {
		return strings.EqualFold(string(m.Status), status) ||
			strings.EqualFold(string(m.Status), "sub_status_"+status)
	}
	env["hasUserStatus"] = func(status string) bool {
		return strings.EqualFold(string(m.UserStatus), status) ||
			strings.EqualFold(string(m.UserStatus), "user_status_"+status)
	}

	return env
}

func emailDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return strings.ToLower(domain)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
