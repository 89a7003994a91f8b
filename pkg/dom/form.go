package dom

import (
	"fmt"
	"strings"
)

// UpsertHiddenInput writes a hidden input with the supplied name and value
// into form, overwriting an existing input of the same name rather than
// adding a second one. It returns the input element.
func UpsertHiddenInput(form *Element, name, value string) (*Element, error) {
	if form == nil || form.node == nil {
		return nil, fmt.Errorf("dom: hidden input requires a form element")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("dom: hidden input name is required")
	}

	for _, input := range form.FindByTag("input") {
		if got, ok := input.Attr("name"); ok && got == name {
			input.SetAttr("type", "hidden")
			input.SetAttr("value", value)
			return input, nil
		}
	}

	input := NewElement("input",
		Attr{Name: "type", Value: "hidden"},
		Attr{Name: "name", Value: name},
		Attr{Name: "value", Value: value},
	)
	if err := form.AppendChild(input); err != nil {
		return nil, err
	}
	return input, nil
}

// SetInlineMessage writes a single message element with the supplied class
// inside container. A later message replaces the text of an existing one so a
// container never accumulates duplicates. The message element is returned.
func SetInlineMessage(container *Element, class, text string) (*Element, error) {
	if container == nil || container.node == nil {
		return nil, fmt.Errorf("dom: inline message requires a container element")
	}
	class = strings.TrimSpace(class)
	if class == "" {
		return nil, fmt.Errorf("dom: inline message class is required")
	}

	if existing := container.FindByClass(class); len(existing) > 0 {
		existing[0].SetText(text)
		return existing[0], nil
	}

	message := NewElement("p", Attr{Name: "class", Value: class})
	message.SetText(text)
	if err := container.AppendChild(message); err != nil {
		return nil, err
	}
	return message, nil
}

// ClearInlineMessage removes any message element with the supplied class from
// container. Clearing an absent message is a no-op.
func ClearInlineMessage(container *Element, class string) {
	if container == nil || container.node == nil {
		return
	}
	for _, message := range container.FindByClass(class) {
		message.Remove()
	}
}
