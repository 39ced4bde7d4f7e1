package config

import "fmt"

// Color styles one palette selector. In TOML it is either a single color
// string, applied to the foreground, or a table with any of fg, bg, bold,
// italic, underline, strikethrough and reverse. Unknown table keys are
// ignored so configs stay forward compatible.
type Color struct {
	Fg            string
	Bg            string
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	Reverse       *bool
}

func (c *Color) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*c = Color{Fg: v}
		return nil
	case map[string]any:
		*c = Color{}
		for key, raw := range v {
			switch key {
			case "fg":
				s, err := colorString(key, raw)
				if err != nil {
					return err
				}
				c.Fg = s
			case "bg":
				s, err := colorString(key, raw)
				if err != nil {
					return err
				}
				c.Bg = s
			case "bold":
				b, err := colorBool(key, raw)
				if err != nil {
					return err
				}
				c.Bold = b
			case "italic":
				b, err := colorBool(key, raw)
				if err != nil {
					return err
				}
				c.Italic = b
			case "underline":
				b, err := colorBool(key, raw)
				if err != nil {
					return err
				}
				c.Underline = b
			case "strikethrough":
				b, err := colorBool(key, raw)
				if err != nil {
					return err
				}
				c.Strikethrough = b
			case "reverse":
				b, err := colorBool(key, raw)
				if err != nil {
					return err
				}
				c.Reverse = b
			}
		}
		return nil
	default:
		return fmt.Errorf("expected color string or table, got %T", value)
	}
}

func colorString(key string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected string for %s, got %T", key, raw)
	}
	return s, nil
}

func colorBool(key string, raw any) (*bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool for %s, got %T", key, raw)
	}
	return &b, nil
}
