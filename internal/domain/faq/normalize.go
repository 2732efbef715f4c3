package faq

// shape recognizes one JSON layout and maps it to items.
type shape func(v any) []Item

// shapes are checked in priority order; the first yielding an item wins.
var shapes = []shape{
	jsonLDWrapperShape,
	faqPageShape,
	flatShape,
	bareListShape,
	questionsShape,
}

// NormalizeItems maps any recognized FAQ layout onto a list of items. It returns nil
// when no layout yields an item.
func NormalizeItems(v any) []Item {
	for _, s := range shapes {
		if items := s(v); len(items) > 0 {
			return items
		}
	}
	return nil
}

// {"json_ld": {"mainEntity": [...]}}
func jsonLDWrapperShape(v any) []Item {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	wrapper, ok := obj["json_ld"].(map[string]any)
	if !ok {
		return nil
	}
	return itemsFrom(wrapper["mainEntity"])
}

// {"@type": "FAQPage", "mainEntity": [...]}
func faqPageShape(v any) []Item {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if t, _ := obj["@type"].(string); t != "FAQPage" {
		return nil
	}
	return itemsFrom(obj["mainEntity"])
}

// {"faq": [...]}
func flatShape(v any) []Item {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return itemsFrom(obj["faq"])
}

// [...]
func bareListShape(v any) []Item {
	if _, ok := v.([]any); !ok {
		return nil
	}
	return itemsFrom(v)
}

// {"questions": [...]}
func questionsShape(v any) []Item {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return itemsFrom(obj["questions"])
}

func itemsFrom(v any) []Item {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var items []Item
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item, ok := itemFrom(obj)
		if ok {
			items = append(items, item)
		}
	}
	return items
}

// itemFrom reads {question, answer} or Schema.org {name, acceptedAnswer: {text}}.
func itemFrom(obj map[string]any) (Item, bool) {
	question := textValue(obj["question"])
	if question == "" {
		question = textValue(obj["name"])
	}
	answer := textValue(obj["answer"])
	if answer == "" {
		switch accepted := obj["acceptedAnswer"].(type) {
		case map[string]any:
			answer = textValue(accepted["text"])
		case string:
			answer = textValue(accepted)
		}
	}
	if question == "" || answer == "" {
		return Item{}, false
	}
	return Item{Question: question, Answer: answer}, true
}

func textValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return SanitizeResponse(s)
}
