// ABOUTME: Tagged property envelope used by the Notion API.
// ABOUTME: One struct per page property, plus extraction and builders.
package notion

// RichText is one span of text inside a title or rich_text property.
// Incoming pages carry plain_text; outgoing payloads carry text.content.
type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

// TextContent is the writable body of a rich text span.
type TextContent struct {
	Content string `json:"content"`
}

// DateValue is the start-anchored date payload.
type DateValue struct {
	Start string `json:"start"`
}

// SelectOption names one select, multi_select, or status option.
type SelectOption struct {
	Name string `json:"name"`
}

// FormulaValue is the computed result of a formula property.
type FormulaValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number,omitempty"`
	String *string  `json:"string,omitempty"`
}

// Property is one page property. The Type tag names which payload field
// is populated; the rest stay empty and are omitted on the wire.
type Property struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Formula     *FormulaValue  `json:"formula,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
}

func joinRichText(spans []RichText) string {
	var out string
	for _, span := range spans {
		if span.PlainText != "" {
			out += span.PlainText
		} else if span.Text != nil {
			out += span.Text.Content
		}
	}
	return out
}

// ExtractValue pulls a plain Go value out of a property envelope. Title and
// rich_text concatenate to a string, number and date pass through, checkbox
// defaults to false, and formulas unwrap their computed result. Unknown or
// unset payloads come back as nil; extraction never fails.
func ExtractValue(p Property) any {
	switch p.Type {
	case "title":
		return joinRichText(p.Title)
	case "rich_text":
		return joinRichText(p.RichText)
	case "number":
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case "date":
		if p.Date == nil {
			return nil
		}
		return p.Date.Start
	case "checkbox":
		if p.Checkbox == nil {
			return false
		}
		return *p.Checkbox
	case "formula":
		if p.Formula == nil {
			return nil
		}
		switch p.Formula.Type {
		case "number":
			if p.Formula.Number == nil {
				return nil
			}
			return *p.Formula.Number
		case "string":
			if p.Formula.String == nil {
				return nil
			}
			return *p.Formula.String
		}
		return nil
	default:
		return nil
	}
}

// TitleProp builds a title property with a single text span.
func TitleProp(content string) Property {
	return Property{
		Type:  "title",
		Title: []RichText{{Text: &TextContent{Content: content}}},
	}
}

// RichTextProp builds a rich_text property with a single text span.
func RichTextProp(content string) Property {
	return Property{
		Type:     "rich_text",
		RichText: []RichText{{Text: &TextContent{Content: content}}},
	}
}

// NumberProp builds a number property.
func NumberProp(value float64) Property {
	return Property{Type: "number", Number: &value}
}

// DateProp builds a date property anchored at start.
func DateProp(start string) Property {
	return Property{Type: "date", Date: &DateValue{Start: start}}
}

// CheckboxProp builds a checkbox property.
func CheckboxProp(checked bool) Property {
	return Property{Type: "checkbox", Checkbox: &checked}
}

// StatusProp builds a status property.
func StatusProp(name string) Property {
	return Property{Type: "status", Status: &SelectOption{Name: name}}
}

// MultiSelectProp builds a multi_select property, one option per item.
func MultiSelectProp(items []string) Property {
	options := make([]SelectOption, len(items))
	for i, item := range items {
		options[i] = SelectOption{Name: item}
	}
	return Property{Type: "multi_select", MultiSelect: options}
}

// TextListProp encodes a list of strings the way the coaching database
// expects: a single item becomes rich text, multiple items become a
// multi_select.
func TextListProp(items []string) Property {
	if len(items) == 1 {
		return RichTextProp(items[0])
	}
	return MultiSelectProp(items)
}
