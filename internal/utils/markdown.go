package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer turns article bodies into sanitized HTML. Output is cached
// by content hash since the same body is rendered on every read.
type MarkdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *Cache[template.HTML]
	ttl    time.Duration
}

func NewMarkdownRenderer(cacheSize int, ttl time.Duration) (*MarkdownRenderer, error) {
	cache, err := NewCache[template.HTML](cacheSize)
	if err != nil {
		return nil, err
	}

	policy := bluemonday.UGCPolicy()
	// Allow images
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)

	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithXHTML(),
			),
		),
		policy: policy,
		cache:  cache,
		ttl:    ttl,
	}, nil
}

func (r *MarkdownRenderer) Render(source string) template.HTML {
	if source == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(source))
	key := hex.EncodeToString(sum[:])
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		// Never hand unsanitized input back.
		return template.HTML(template.HTMLEscapeString(source))
	}

	sanitized := r.policy.SanitizeBytes(buf.Bytes())
	out := EnhanceHTMLContent(string(sanitized))
	r.cache.Set(key, out, r.ttl)
	return out
}
