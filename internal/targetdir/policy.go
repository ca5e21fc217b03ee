package targetdir

import (
	"fmt"
	"strings"
)

// Policy is the conflict strategy for an occupied target directory.
type Policy string

const (
	PolicyPrompt    Policy = "prompt"
	PolicyOverwrite Policy = "overwrite"
	PolicyRename    Policy = "rename"
	PolicySkip      Policy = "skip"
)

// Policies lists every valid policy in flag-help order.
var Policies = []Policy{PolicyPrompt, PolicyOverwrite, PolicyRename, PolicySkip}

// ParsePolicy parses a case-insensitive policy name. An empty string
// selects PolicyPrompt.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PolicyPrompt, nil
	}

	for _, p := range Policies {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown conflict policy %q (valid: %s)", s, policyList())
}

func policyList() string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// Decision records what the resolver did to produce the target.
type Decision string

const (
	DecisionCreated        Decision = "created"
	DecisionOverwritten    Decision = "overwritten"
	DecisionRenamed        Decision = "renamed"
	DecisionUnchangedEmpty Decision = "unchanged-empty"
)

// Destructive reports whether the decision removed existing data.
func (d Decision) Destructive() bool {
	return d == DecisionOverwritten
}
