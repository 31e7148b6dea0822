package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func newTestPipeline() *Pipeline {
	return NewPipeline("i", "el-")
}

func parseDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

// normalizeCSS strips whitespace so serialization differences ("color: red"
// vs "color:red") don't matter to assertions.
func normalizeCSS(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func TestProcess_InlinesStylesAndRemovesStyleBlock(t *testing.T) {
	in := `<html><head><style>.a{color:red}</style></head><body><div id="i1" class="a"></div></body></html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if strings.Contains(out, "<style") {
		t.Errorf("output still contains a style block:\n%s", out)
	}

	doc := parseDoc(t, out)
	div := doc.Find("div").First()
	style, ok := div.Attr("style")
	if !ok {
		t.Fatalf("div has no style attribute:\n%s", out)
	}
	if !strings.Contains(normalizeCSS(style), "color:red") {
		t.Errorf("div style = %q, want color:red inlined", style)
	}

	id, _ := div.Attr("id")
	if id == "i1" {
		t.Error("auto-generated id i1 was not remapped")
	}
	if !strings.HasPrefix(id, "el-") {
		t.Errorf("remapped id = %q, want el- prefix", id)
	}
}

func TestProcess_LabelAssociationFollowsNewID(t *testing.T) {
	in := `<html><body><label for="i2">Name</label><div id="i2"></div></body></html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	doc := parseDoc(t, out)
	newID, _ := doc.Find("div").First().Attr("id")
	forVal, _ := doc.Find("label").First().Attr("for")
	if newID == "i2" {
		t.Error("id i2 was not remapped")
	}
	if forVal != newID {
		t.Errorf("label for = %q, div id = %q, want them equal", forVal, newID)
	}
}

func TestProcess_FragmentLinksRewritten(t *testing.T) {
	in := `<html><body><a href="#i4">jump</a><a href="#i4">again</a><div id="i4"></div></body></html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	doc := parseDoc(t, out)
	newID, _ := doc.Find("div").First().Attr("id")
	doc.Find("a").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href != "#"+newID {
			t.Errorf("anchor %d href = %q, want #%s", i, href, newID)
		}
	})
}

func TestProcess_NonMatchingIdentifiersUntouched(t *testing.T) {
	in := `<html><body><a href="#main">top</a><label for="main">x</label><div id="main"></div><span id="nav"></span></body></html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	doc := parseDoc(t, out)
	checks := []struct {
		sel, attr, want string
	}{
		{"div", "id", "main"},
		{"span", "id", "nav"},
		{"a", "href", "#main"},
		{"label", "for", "main"},
	}
	for _, c := range checks {
		if got, _ := doc.Find(c.sel).First().Attr(c.attr); got != c.want {
			t.Errorf("%s %s = %q, want %q", c.sel, c.attr, got, c.want)
		}
	}
}

func TestProcess_FreshIDsDifferAcrossInvocations(t *testing.T) {
	in := `<html><body><div id="i1"></div></body></html>`
	p := newTestPipeline()

	first, err := p.Process(in)
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}
	second, err := p.Process(in)
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}

	firstID, _ := parseDoc(t, first).Find("div").First().Attr("id")
	secondID, _ := parseDoc(t, second).Find("div").First().Attr("id")
	if firstID == secondID {
		t.Errorf("both invocations produced id %q, want fresh ids each run", firstID)
	}
}

func TestProcess_MediaQueryRulesRetained(t *testing.T) {
	in := `<html><head><style>.a{color:red} @media only screen and (max-width:600px){.a{padding:0}}</style></head><body><div id="x" class="a"></div></body></html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(out, "@media") {
		t.Errorf("media-conditional rules were dropped:\n%s", out)
	}
	style, _ := parseDoc(t, out).Find("div").First().Attr("style")
	if !strings.Contains(normalizeCSS(style), "color:red") {
		t.Errorf("unconditional rule not inlined, div style = %q", style)
	}
}

func TestProcess_DoctypePreserved(t *testing.T) {
	// Same shape as the shipped template: doctype, head with unconditional
	// and media-conditional rules, auto-generated ids with a fragment link.
	in := `<!DOCTYPE html>
<html>
<head>
  <style>
    .content { color: red; }
    @media only screen and (max-width: 600px) { .content { padding: 0; } }
  </style>
</head>
<body>
  <div class="content" id="i3"><a href="#i4">jump</a></div>
  <div id="i4">target</div>
</body>
</html>`
	out, err := newTestPipeline().Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>") {
		t.Errorf("doctype lost in serialization, output starts with %q", out[:min(40, len(out))])
	}
	if !strings.Contains(out, "@media") {
		t.Error("media-conditional rules were dropped")
	}
	if !strings.Contains(out, `id="el-`) {
		t.Error("auto-generated ids were not remapped")
	}
}

func TestProcess_IdempotentOnAlreadyInlinedContent(t *testing.T) {
	in := `<html><body><div id="main" style="color:red">x</div></body></html>`
	p := newTestPipeline()

	first, err := p.Process(in)
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}
	second, err := p.Process(first)
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}

	firstStyle, _ := parseDoc(t, first).Find("div").First().Attr("style")
	secondStyle, _ := parseDoc(t, second).Find("div").First().Attr("style")
	if normalizeCSS(firstStyle) != normalizeCSS(secondStyle) {
		t.Errorf("style drifted across runs: %q then %q", firstStyle, secondStyle)
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		_, err := newTestPipeline().Process(in)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Process(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}

type failingInliner struct{}

func (failingInliner) Inline(string) (string, error) {
	return "", errors.New("unbalanced rule at line 3")
}

func TestProcess_InlinerFailureWrapped(t *testing.T) {
	p := newTestPipeline()
	p.inliner = failingInliner{}

	_, err := p.Process(`<html><body></body></html>`)
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("err = %v, want ErrProcessing", err)
	}
	if !strings.Contains(err.Error(), "unbalanced rule at line 3") {
		t.Errorf("err = %v, want underlying diagnostic preserved", err)
	}
}
