package models

import (
	"fmt"
	"strings"
)

// Status describes how far a contact has been engaged.
type Status string

const (
	StatusUncontacted Status = "uncontacted"
	StatusContacted   Status = "contacted"
)

var allStatuses = []Status{StatusUncontacted, StatusContacted}

// StatusNames returns every status value in declaration order.
func StatusNames() []string {
	out := make([]string, len(allStatuses))
	for i, s := range allStatuses {
		out[i] = string(s)
	}
	return out
}

// ParseStatus maps s to a Status, ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range allStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("status should be one of: %s", strings.Join(StatusNames(), ", "))
}
