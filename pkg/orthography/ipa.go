package orthography

import "strings"

// IPA renders a pronunciation for display. Symbols with a mapping are
// replaced, everything else passes through unchanged, so partially covered
// historical inventories still render.
type IPA struct {
	mappings map[string]string
}

// NewIPA copies the mapping so later mutation of the argument cannot leak in.
func NewIPA(mappings map[string]string) *IPA {
	m := make(map[string]string, len(mappings))
	for k, v := range mappings {
		m[k] = v
	}
	return &IPA{mappings: m}
}

// Render joins the per-symbol transcriptions without separators.
func (p *IPA) Render(symbols []string) string {
	var b strings.Builder
	for _, sym := range symbols {
		if out, ok := p.mappings[sym]; ok {
			b.WriteString(out)
			continue
		}
		b.WriteString(sym)
	}
	return b.String()
}
