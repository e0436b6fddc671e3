package wcdoc

import "regexp"

// ExtensionRule maps source paths matching Pattern to an extension family.
type ExtensionRule struct {
	Family  string
	Pattern *regexp.Regexp
}

// ParseExtensionRule compiles a configured rule.
func ParseExtensionRule(family, pattern string) (ExtensionRule, error) {
	if family == "" {
		return ExtensionRule{}, Errorf(EINVALID, "extension family required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ExtensionRule{}, Errorf(EINVALID, "extension %q: invalid pattern %q: %s", family, pattern, err)
	}
	return ExtensionRule{Family: family, Pattern: re}, nil
}

// DefaultExtensionRules returns the binding layers of the Onsen UI source
// tree: the Vue, AngularJS and Angular bindings.
func DefaultExtensionRules() []ExtensionRule {
	return []ExtensionRule{
		{Family: "vue", Pattern: regexp.MustCompile(`^\.\./vue-onsenui/`)},
		{Family: "angular1", Pattern: regexp.MustCompile(`^bindings/angular1/`)},
		{Family: "angular2", Pattern: regexp.MustCompile(`^\.\./ngx-onsenui/`)},
	}
}

// Classifier assigns extension families to source paths.
type Classifier struct {
	rules []ExtensionRule
}

// NewClassifier returns a classifier evaluating rules top to bottom.
func NewClassifier(rules ...ExtensionRule) *Classifier {
	return &Classifier{rules: append([]ExtensionRule(nil), rules...)}
}

// Classify returns the family of the first rule matching path, or "" when
// none does. The first match wins regardless of pattern specificity.
func (c *Classifier) Classify(path string) string {
	if c == nil {
		return ""
	}
	for _, rule := range c.rules {
		if rule.Pattern.MatchString(path) {
			return rule.Family
		}
	}
	return ""
}

// Rules returns a copy of the configured rules in evaluation order.
func (c *Classifier) Rules() []ExtensionRule {
	if c == nil {
		return nil
	}
	return append([]ExtensionRule(nil), c.rules...)
}
