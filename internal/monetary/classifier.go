package monetary

import (
	"github.com/contalivre/contalivre/internal/model"
)

// Result is the outcome of classifying one account.
type Result struct {
	Class      Class
	Rule       string
	Overridden bool
}

// Classification pairs an account with its result.
type Classification struct {
	Account model.Account
	Result
}

// Classifier applies a rule cascade plus per-account overrides. It is
// immutable; the With methods return modified copies.
type Classifier struct {
	rules     []Rule
	overrides map[string]Class
}

// NewClassifier returns a classifier over rules. A nil rules slice means
// DefaultRules.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules, overrides: map[string]Class{}}
}

// WithOverride returns a classifier that always reports class for the
// account with the given ID.
func (c *Classifier) WithOverride(accountID string, class Class) *Classifier {
	next := &Classifier{rules: c.rules, overrides: make(map[string]Class, len(c.overrides)+1)}
	for k, v := range c.overrides {
		next.overrides[k] = v
	}
	next.overrides[accountID] = class
	return next
}

// WithOverrides applies every override in order.
func (c *Classifier) WithOverrides(overrides []Override) *Classifier {
	next := c
	for _, o := range overrides {
		next = next.WithOverride(o.AccountID, o.Class)
	}
	return next
}

// Classify returns the class of a. A user override always wins.
func (c *Classifier) Classify(a model.Account) Result {
	if class, ok := c.overrides[a.ID]; ok {
		return Result{Class: class, Rule: RuleOverride, Overridden: true}
	}
	return c.computed(a)
}

func (c *Classifier) computed(a model.Account) Result {
	for _, r := range c.rules {
		if r.Match(a) {
			return Result{Class: r.Class, Rule: r.Name}
		}
	}
	return Result{Class: Monetary, Rule: RuleDefault}
}

// IsMonetary is a shorthand for Classify(a).Class == Monetary.
func (c *Classifier) IsMonetary(a model.Account) bool {
	return c.Classify(a).Class == Monetary
}

// ClassifyAll classifies every non-header account in input order.
func (c *Classifier) ClassifyAll(accounts []model.Account) []Classification {
	out := make([]Classification, 0, len(accounts))
	for _, a := range accounts {
		if a.IsHeader {
			continue
		}
		out = append(out, Classification{Account: a, Result: c.Classify(a)})
	}
	return out
}
