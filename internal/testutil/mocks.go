package testutil

import (
	"context"
	"fmt"
	"strings"
)

// ScriptedRule matches a prompt and scripts the reply
type ScriptedRule struct {
	Contains []string // substrings that must all appear in the prompt
	Reply    string
	Err      error
	// FailTimes makes the rule return Err only for its first N matches,
	// then Reply. Used to script rate limits that clear after retries.
	// Zero with a non-nil Err means the rule always fails.
	FailTimes int

	hits int
}

func (r *ScriptedRule) matches(prompt string) bool {
	for _, s := range r.Contains {
		if !strings.Contains(prompt, s) {
			return false
		}
	}
	return true
}

// ScriptedProvider mocks a translation provider. Rules are checked in
// order; the first whose substrings all appear in the prompt wins.
type ScriptedProvider struct {
	Rules []*ScriptedRule
	Calls []string
}

// Complete mocks a language-model request
func (p *ScriptedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.Calls = append(p.Calls, prompt)

	for _, rule := range p.Rules {
		if !rule.matches(prompt) {
			continue
		}

		if rule.Err != nil {
			if rule.FailTimes == 0 {
				return "", rule.Err
			}
			if rule.hits < rule.FailTimes {
				rule.hits++
				return "", rule.Err
			}
		}

		return rule.Reply, nil
	}

	return "", fmt.Errorf("no scripted rule matches prompt: %s", prompt)
}

// Name returns the provider name
func (p *ScriptedProvider) Name() string {
	return "scripted"
}

// CallCount returns how many prompts contained the given substring
func (p *ScriptedProvider) CallCount(contains string) int {
	count := 0
	for _, call := range p.Calls {
		if strings.Contains(call, contains) {
			count++
		}
	}
	return count
}
