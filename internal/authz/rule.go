package authz

// Rule is a boolean predicate evaluated against a subject environment.
type Rule interface {
	Exec(env map[string]any) (bool, error)
	String() string
}
