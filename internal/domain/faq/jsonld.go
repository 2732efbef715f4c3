package faq

import (
	"bytes"
	"encoding/json"
)

type jsonLDAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type jsonLDQuestion struct {
	Type           string       `json:"@type"`
	Name           string       `json:"name"`
	AcceptedAnswer jsonLDAnswer `json:"acceptedAnswer"`
}

type jsonLDPage struct {
	Context    string           `json:"@context"`
	Type       string           `json:"@type"`
	MainEntity []jsonLDQuestion `json:"mainEntity"`
}

// RenderJSONLD renders items as a Schema.org FAQPage document. Every "</" is written
// as "<\/" so the document can sit inside a <script> element without closing it.
func RenderJSONLD(items []Item) ([]byte, error) {
	page := jsonLDPage{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: make([]jsonLDQuestion, 0, len(items)),
	}
	for _, item := range items {
		page.MainEntity = append(page.MainEntity, jsonLDQuestion{
			Type:           "Question",
			Name:           item.Question,
			AcceptedAnswer: jsonLDAnswer{Type: "Answer", Text: item.Answer},
		})
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(page); err != nil {
		return nil, err
	}
	doc := bytes.TrimRight(buf.Bytes(), "\n")
	return bytes.ReplaceAll(doc, []byte("</"), []byte(`<\/`)), nil
}
