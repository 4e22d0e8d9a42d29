// Package chat implements the assistant panel: a keyword responder and a panel whose bot
// replies arrive after a delay and are dropped once the panel closes.
package chat

import "strings"

// Rule replies with Reply when the input contains any of Keywords
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

// Script everything the assistant can say in one locale
type Script struct {
	Greeting string `yaml:"greeting"`
	Rules    []Rule `yaml:"rules"`
	Fallback string `yaml:"fallback"`
}

// Responder picks the first matching rule
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder lowercases every keyword once
func NewResponder(s Script) *Responder {
	rules := make([]Rule, 0, len(s.Rules))
	for _, r := range s.Rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(k); k != "" {
				kw = append(kw, k)
			}
		}
		rules = append(rules, Rule{Name: r.Name, Keywords: kw, Reply: r.Reply})
	}
	return &Responder{rules: rules, fallback: s.Fallback}
}

// Respond returns the reply for input
func (r *Responder) Respond(input string) string {
	in := strings.ToLower(input)
	for _, rule := range r.rules {
		for _, k := range rule.Keywords {
			if strings.Contains(in, k) {
				return rule.Reply
			}
		}
	}
	return r.fallback
}
