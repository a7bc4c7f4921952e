package input

import (
	"testing"

	"github.com/pdelacruz/newscred/internal/model"
)

func defaultDetector() *Detector {
	return NewDetector([]string{"facebook.com", "www.facebook.com", "fb.com"})
}

func TestDetector_Detect(t *testing.T) {
	d := defaultDetector()

	cases := []struct {
		name  string
		input string
		want  model.InputType
	}{
		{"social url", "https://www.facebook.com/somepage/posts/12345", model.InputTypeSocialPost},
		{"social subdomain", "https://m.facebook.com/story.php?id=1", model.InputTypeSocialPost},
		{"plain url", "https://example.com/article", model.InputTypeURL},
		{"http url", "http://news.example.org/2024/01/story", model.InputTypeURL},
		{"post id", "123456_789012", model.InputTypeSocialPost},
		{"free text", "The mayor announced a new policy today.", model.InputTypeText},
		{"url-ish text", "visit example.com for details", model.InputTypeText},
		{"ftp scheme ignored", "ftp://example.com/file", model.InputTypeText},
		{"whitespace trimmed", "  https://example.com  ", model.InputTypeURL},
		{"empty", "", model.InputTypeText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Detect(tc.input); got != tc.want {
				t.Errorf("Detect(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDetector_RuleOrder(t *testing.T) {
	d := defaultDetector()

	// Social URLs must be claimed before the generic URL rule
	rules := d.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	wantOrder := []string{"social-url", "url", "post-id"}
	for i, name := range wantOrder {
		if rules[i].Name != name {
			t.Errorf("rule %d = %q, want %q", i, rules[i].Name, name)
		}
	}

	// A facebook URL matches both the social-url and url rules; order decides
	social := "https://facebook.com/page/posts/1"
	if !rules[0].Match(social) {
		t.Error("social-url rule should match facebook post URL")
	}
	if !rules[1].Match(social) {
		t.Error("url rule should also match facebook post URL")
	}
	if got := d.Detect(social); got != model.InputTypeSocialPost {
		t.Errorf("Detect should prefer social_post, got %q", got)
	}
}

func TestDetector_Resolve(t *testing.T) {
	d := defaultDetector()

	// Declared type wins over detection
	if got := d.Resolve("https://example.com", model.InputTypeText); got != model.InputTypeText {
		t.Errorf("declared text should not be overridden, got %q", got)
	}

	// Auto falls through to detection
	if got := d.Resolve("https://example.com", model.InputTypeAuto); got != model.InputTypeURL {
		t.Errorf("auto should detect url, got %q", got)
	}
	if got := d.Resolve("plain words", ""); got != model.InputTypeText {
		t.Errorf("empty declaration should detect text, got %q", got)
	}
}
