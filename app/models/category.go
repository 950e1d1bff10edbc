package models

// Validate checks the category fields.
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// Validate checks the friend link fields.
func (f *FriendLink) Validate() error {
	return validate.Struct(f)
}
