package input

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdelacruz/newscred/internal/model"
)

// Rule is one input classification rule. Rules are pure and evaluated in
// slice order; the first match wins.
type Rule struct {
	Name  string
	Type  model.InputType
	Match func(trimmed string) bool
}

var postIDPattern = regexp.MustCompile(`^\d+_\d+$`)

// Detector classifies raw input into text, url, or social_post
type Detector struct {
	rules []Rule
}

// NewDetector builds a detector for the given social platform hostnames
func NewDetector(socialHosts []string) *Detector {
	hosts := make(map[string]bool, len(socialHosts))
	for _, h := range socialHosts {
		hosts[strings.ToLower(h)] = true
	}

	rules := []Rule{
		{
			Name: "social-url",
			Type: model.InputTypeSocialPost,
			Match: func(s string) bool {
				host, ok := absoluteURLHost(s)
				return ok && isSocialHost(host, hosts)
			},
		},
		{
			Name: "url",
			Type: model.InputTypeURL,
			Match: func(s string) bool {
				_, ok := absoluteURLHost(s)
				return ok
			},
		},
		{
			Name: "post-id",
			Type: model.InputTypeSocialPost,
			Match: func(s string) bool {
				return postIDPattern.MatchString(s)
			},
		},
	}

	return &Detector{rules: rules}
}

// Detect returns the resolved input type for raw input. Anything no rule
// claims is treated as free text.
func (d *Detector) Detect(raw string) model.InputType {
	trimmed := strings.TrimSpace(raw)
	for _, rule := range d.rules {
		if rule.Match(trimmed) {
			return rule.Type
		}
	}
	return model.InputTypeText
}

// Resolve applies auto-detection only when the caller declared "auto"
func (d *Detector) Resolve(raw string, declared model.InputType) model.InputType {
	if declared != model.InputTypeAuto && declared != "" {
		return declared
	}
	return d.Detect(raw)
}

// Rules exposes the ordered rule list so priority is testable as data
func (d *Detector) Rules() []Rule {
	return d.rules
}

// absoluteURLHost reports whether s is a well-formed absolute http(s) URL,
// returning its lowercased host when it is
func absoluteURLHost(s string) (string, bool) {
	parsed, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	if parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Hostname()), true
}

// isSocialHost matches exact hosts and subdomains of configured platforms
func isSocialHost(host string, hosts map[string]bool) bool {
	if hosts[host] {
		return true
	}
	for h := range hosts {
		if strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
