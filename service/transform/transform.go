// Package transform prepares editor-authored HTML for email distribution:
// embedded stylesheet rules are inlined into element style attributes and
// auto-generated element identifiers are replaced with globally-unique ones,
// with all internal references rewritten to match.
package transform

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/vanng822/go-premailer/premailer"

	"mailpress/config"
)

// Transformer is the document pipeline consumed by the HTTP and CLI layers.
type Transformer interface {
	Process(html string) (string, error)
}

// Inliner resolves embedded stylesheet rules into inline style attributes.
type Inliner interface {
	Inline(html string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ Transformer = (*Pipeline)(nil)
	_ Inliner     = premailerInliner{}
)

// premailerInliner wraps the go-premailer engine. Unconditional rules are
// merged into matching elements and their <style> blocks removed; media
// queries cannot be inlined per element and stay in a residual block.
type premailerInliner struct{}

func (premailerInliner) Inline(src string) (string, error) {
	prem, err := premailer.NewPremailerFromString(src, premailer.NewOptions())
	if err != nil {
		return "", err
	}
	return prem.Transform()
}

// Pipeline transforms one HTML document per call. It holds no per-document
// state: the old-to-new identifier mapping lives only inside Process, so a
// single Pipeline is safe for concurrent requests.
type Pipeline struct {
	idPrefix    string
	newIDPrefix string
	inliner     Inliner
}

// New builds a Pipeline from the global AppConfig.
func New() *Pipeline {
	config.LoadAppConfig()
	return NewPipeline(config.AppConfig.IDPrefix, config.AppConfig.NewIDPrefix)
}

// NewPipeline builds a Pipeline with explicit identifier prefixes.
// idPrefix marks auto-generated identifiers to replace; newIDPrefix is
// prepended to the minted replacements.
func NewPipeline(idPrefix, newIDPrefix string) *Pipeline {
	return &Pipeline{
		idPrefix:    idPrefix,
		newIDPrefix: newIDPrefix,
		inliner:     premailerInliner{},
	}
}

// Process returns the transformed document or an error; it never returns a
// partially transformed document. Empty input fails with ErrEmptyInput before
// any parsing; engine failures are wrapped in ErrProcessing with the
// underlying diagnostic preserved.
func (p *Pipeline) Process(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", ErrEmptyInput
	}
	inlined, err := p.inliner.Inline(src)
	if err != nil {
		return "", fmt.Errorf("%w: inline styles: %v", ErrProcessing, err)
	}
	out, err := p.remapIdentifiers(inlined)
	if err != nil {
		return "", fmt.Errorf("%w: remap identifiers: %v", ErrProcessing, err)
	}
	return out, nil
}

// remapIdentifiers assigns a fresh unique id to every element whose id starts
// with the auto-generated prefix, then rewrites fragment links (href="#id")
// and label associations (for="id") that pointed at the old ids. Identifiers
// outside the prefix scheme, and their references, are left untouched.
func (p *Pipeline) remapIdentifiers(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", err
	}

	mapping := make(map[string]string)
	doc.Find("[id]").Each(func(_ int, el *goquery.Selection) {
		old, _ := el.Attr("id")
		if !strings.HasPrefix(old, p.idPrefix) {
			return
		}
		fresh, ok := mapping[old]
		if !ok {
			fresh = p.freshID()
			mapping[old] = fresh
		}
		el.SetAttr("id", fresh)
	})

	doc.Find("[href]").Each(func(_ int, el *goquery.Selection) {
		href, _ := el.Attr("href")
		if !strings.HasPrefix(href, "#") {
			return
		}
		if fresh, ok := mapping[strings.TrimPrefix(href, "#")]; ok {
			el.SetAttr("href", "#"+fresh)
		}
	})
	doc.Find("[for]").Each(func(_ int, el *goquery.Selection) {
		target, _ := el.Attr("for")
		if fresh, ok := mapping[target]; ok {
			el.SetAttr("for", fresh)
		}
	})

	return doc.Html()
}

// freshID mints an identifier with 122 bits of randomness, so collisions
// across documents and invocations are cryptographically improbable.
func (p *Pipeline) freshID() string {
	return p.newIDPrefix + uuid.NewString()
}
