// pkg/classify/rules.go

package classify

// Rule pairs a predicate with the severity it assigns. Keeping rules in an
// explicit ordered list makes the priority order auditable and testable on
// its own; status rules must always precede staleness rules.
type Rule[T any] struct {
	Name     string
	Severity Severity
	When     func(entity T) (bool, string)
}

// Ruleset is an ordered list of rules evaluated first-match-wins.
type Ruleset[T any] []Rule[T]

// Evaluate runs the rules in order against one entity. The first rule whose
// predicate fires decides severity and reason; when none fire the entity is
// ok with okReason.
func (rs Ruleset[T]) Evaluate(name string, entity T, okReason string) Result {
	for _, rule := range rs {
		if hit, reason := rule.When(entity); hit {
			return Result{
				Name:     name,
				Severity: rule.Severity,
				Reason:   reason,
			}
		}
	}
	return Result{
		Name:     name,
		Severity: SeverityOK,
		Reason:   okReason,
	}
}
