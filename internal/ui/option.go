package ui

// Option is one labeled, checkable row of the options list.
type Option struct {
	label   string
	checked bool
}

// NewOption creates an unchecked option.
func NewOption(label string) *Option {
	return &Option{label: label}
}

// Label returns the display label.
func (o *Option) Label() string { return o.label }

// Checked reports whether the option is toggled on.
func (o *Option) Checked() bool { return o.checked }

// SetChecked sets the toggle state.
func (o *Option) SetChecked(v bool) { o.checked = v }

// Toggle flips the toggle state.
func (o *Option) Toggle() { o.checked = !o.checked }
