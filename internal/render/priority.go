package render

// PriorityDescriptor is the static display metadata for an alert severity
// level.
type PriorityDescriptor struct {
	Name  string
	Color string
	Icon  string
}

// alertPriorities maps priority 1 (most severe) through 5 to display metadata.
var alertPriorities = map[int]PriorityDescriptor{
	1: {Name: "CRITICAL", Color: "#dc3545", Icon: "🔴"},
	2: {Name: "HIGH", Color: "#fd7e14", Icon: "🟠"},
	3: {Name: "MEDIUM", Color: "#ffc107", Icon: "🟡"},
	4: {Name: "LOW", Color: "#28a745", Icon: "🟢"},
	5: {Name: "INFO", Color: "#17a2b8", Icon: "🔵"},
}

// DescriptorFor returns the display descriptor for a priority value. Any
// value outside 1..5 gets the priority 5 descriptor.
func DescriptorFor(priority int) PriorityDescriptor {
	if d, ok := alertPriorities[priority]; ok {
		return d
	}
	return alertPriorities[5]
}
