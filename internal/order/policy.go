package order

import "fmt"

// AssignmentPolicy decides who gets an item added without an explicit
// customer name while the bill already has diners.
type AssignmentPolicy string

const (
	// PolicyFirstAlphabetical gives the item to the diner whose name sorts first.
	PolicyFirstAlphabetical AssignmentPolicy = "first-alphabetical"
	// PolicyMostRecent gives the item to whoever received the last line.
	PolicyMostRecent AssignmentPolicy = "most-recent"
	// PolicyAlwaysPrompt never guesses; the caller is always asked for a name.
	PolicyAlwaysPrompt AssignmentPolicy = "always-prompt"
)

func ParsePolicy(s string) (AssignmentPolicy, error) {
	switch p := AssignmentPolicy(s); p {
	case PolicyFirstAlphabetical, PolicyMostRecent, PolicyAlwaysPrompt:
		return p, nil
	case "":
		return PolicyFirstAlphabetical, nil
	}
	return "", fmt.Errorf("unknown assignment policy %q", s)
}

// resolve returns the customer an anonymous item goes to, or "" when the
// caller must prompt for a name.
func (p AssignmentPolicy) resolve(customers []string, cart []CartItem) string {
	if len(customers) == 0 {
		return ""
	}

	switch p {
	case PolicyAlwaysPrompt:
		return ""
	case PolicyMostRecent:
		return cart[len(cart)-1].CustomerName
	default:
		return customers[0]
	}
}
