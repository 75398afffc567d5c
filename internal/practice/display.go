package practice

// Display holds UI-only expand/collapse flags for review items. It is kept
// outside Session and has no effect on the state machine.
type Display struct {
	expanded map[int]bool
}

func NewDisplay() *Display {
	return &Display{expanded: make(map[int]bool)}
}

// Toggle flips item i and returns its new state.
func (d *Display) Toggle(i int) bool {
	d.expanded[i] = !d.expanded[i]
	return d.expanded[i]
}

func (d *Display) Expanded(i int) bool {
	return d.expanded[i]
}

func (d *Display) CollapseAll() {
	d.expanded = make(map[int]bool)
}
