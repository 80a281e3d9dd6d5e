// Package exporter renders a purge configuration in the formats the
// purging tool's own loader reads.
package exporter

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"text/template"

	"github.com/aleister1102/purgeconf/internal/common"
	"github.com/aleister1102/purgeconf/internal/config"
	"github.com/aleister1102/purgeconf/internal/extractor"
)

// Format is an export target.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "js", "javascript", "":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", common.NewValidationError("format", name, "must be one of: js, json")
	}
}

// ExtractorDocument is the JSON form of one extractor.
type ExtractorDocument struct {
	Extensions    []string `json:"extensions,omitempty"`
	Pattern       string   `json:"pattern"`
	Flags         string   `json:"flags"`
	SplitVariants bool     `json:"splitVariants,omitempty"`
}

// Document is the JSON form of a purge configuration.
type Document struct {
	Content          []string            `json:"content"`
	DefaultExtractor ExtractorDocument   `json:"defaultExtractor"`
	Extractors       []ExtractorDocument `json:"extractors,omitempty"`
}

// NewDocument converts cfg, substituting the built-in pattern when the
// default extractor has none.
func NewDocument(cfg config.PurgeConfig) Document {
	def := ExtractorDocument{
		Pattern: cfg.DefaultExtractor.Pattern,
		Flags:   "g",
	}
	if def.Pattern == "" {
		def.Pattern = extractor.DefaultPattern
		def.SplitVariants = cfg.DefaultExtractor.SplitVariants
	}

	doc := Document{
		Content:          append([]string(nil), cfg.Content...),
		DefaultExtractor: def,
	}
	for _, override := range cfg.Extractors {
		exts := make([]string, 0, len(override.Extensions))
		for _, ext := range override.Extensions {
			exts = append(exts, strings.TrimPrefix(ext, "."))
		}
		doc.Extractors = append(doc.Extractors, ExtractorDocument{
			Extensions: exts,
			Pattern:    override.Pattern,
			Flags:      "g",
		})
	}
	return doc
}

// Export writes cfg to w in the given format.
func Export(w io.Writer, cfg config.PurgeConfig, format Format) error {
	doc := NewDocument(cfg)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return common.WrapError(err, "failed to encode JSON export")
		}
		return nil
	case FormatJS:
		if err := jsTemplate.Execute(w, doc); err != nil {
			return common.WrapError(err, "failed to render JS export")
		}
		return nil
	default:
		return common.NewValidationError("format", string(format), "unsupported export format")
	}
}

var jsTemplate = template.Must(template.New("purgecss.config.js").Funcs(template.FuncMap{
	"jsq": jsString,
}).Parse(`// Generated by purgeconf. Edit the purgeconf configuration instead.
module.exports = {
  content: [
{{- range .Content}}
    {{jsq .}},
{{- end}}
  ],
  defaultExtractor: {{template "extractor" .DefaultExtractor}},
{{- if .Extractors}}
  extractors: [
{{- range .Extractors}}
    {
      extractor: {{template "extractor" .}},
      extensions: [{{range $i, $e := .Extensions}}{{if $i}}, {{end}}{{jsq $e}}{{end}}],
    },
{{- end}}
  ],
{{- end}}
};
{{define "extractor" -}}
{{if .SplitVariants -}}
content => (content.match(new RegExp({{jsq .Pattern}}, {{jsq .Flags}})) || [])
    .flatMap(t => [t, ...(t.includes(':') ? t.split(':').filter(Boolean) : [])])
{{- else -}}
content => content.match(new RegExp({{jsq .Pattern}}, {{jsq .Flags}})) || []
{{- end}}
{{- end}}`))

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
