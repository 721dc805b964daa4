package validate

import (
	"fmt"
)

// Username must be lowercase letters, digits, underscore or hyphen,
// 3-30 chars.
func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if len(v) < 3 || len(v) > 30 {
		return fmt.Errorf("username must be 3-30 characters")
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-' {
			continue
		}
		return fmt.Errorf("username may contain lowercase letters, digits, underscore and hyphen only")
	}
	return nil
}

// Password enforces a minimum length; composition rules are deliberately
// not imposed.
func Password(v string) error {
	if len(v) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(v) > 256 {
		return fmt.Errorf("password exceeds 256 characters")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// -------- Request specific helpers ----------

func Register(username, password string) error {
	if err := Username(username); err != nil {
		return err
	}
	return Password(password)
}

func CreatePost(content string, options *string) error {
	if err := NonEmpty("content", content); err != nil {
		return err
	}
	if len(content) > 5000 {
		return fmt.Errorf("content exceeds 5000 characters")
	}
	return MaxLen("options", options, 2000)
}

func CreateItem(title, description string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	return MaxLen("description", &description, 2000)
}

func CreateGoal(title, description string) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	return MaxLen("description", &description, 2000)
}

func CreateProfile(name string, contact, bio *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds 100 characters")
	}
	if err := MaxLen("contact", contact, 200); err != nil {
		return err
	}
	return MaxLen("bio", bio, 1000)
}

func DraftMessage(recipientID, text string, attachment *string) error {
	if err := NonEmpty("recipientId", recipientID); err != nil {
		return err
	}
	if err := NonEmpty("text", text); err != nil {
		return err
	}
	if len(text) > 5000 {
		return fmt.Errorf("text exceeds 5000 characters")
	}
	return MaxLen("attachment", attachment, 2000)
}
