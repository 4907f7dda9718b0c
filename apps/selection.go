package apps

import "sort"

// Selection is the set of package names whose traffic bypasses the
// tunnel. It is owned by a single goroutine (the UI loop) and is not
// safe for concurrent use.
type Selection struct {
	members map[string]struct{}
}

// NewSelection creates a selection pre-populated with the given
// package names.
func NewSelection(packageNames ...string) *Selection {
	s := &Selection{members: make(map[string]struct{}, len(packageNames))}
	for _, pkg := range packageNames {
		if pkg != "" {
			s.members[pkg] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the package is selected.
func (s *Selection) Contains(pkg string) bool {
	_, ok := s.members[pkg]
	return ok
}

// Toggle flips the package's membership and returns the new state.
func (s *Selection) Toggle(pkg string) bool {
	if pkg == "" {
		return false
	}
	if s.Contains(pkg) {
		delete(s.members, pkg)
		return false
	}
	s.members[pkg] = struct{}{}
	return true
}

// Set forces the package's membership to the given state.
func (s *Selection) Set(pkg string, selected bool) {
	if pkg == "" {
		return
	}
	if selected {
		s.members[pkg] = struct{}{}
	} else {
		delete(s.members, pkg)
	}
}

// Replace swaps the whole selection for the given package names.
func (s *Selection) Replace(packageNames []string) {
	s.members = make(map[string]struct{}, len(packageNames))
	for _, pkg := range packageNames {
		if pkg != "" {
			s.members[pkg] = struct{}{}
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.members = make(map[string]struct{})
}

// Len returns the number of selected packages.
func (s *Selection) Len() int {
	return len(s.members)
}

// Snapshot returns the selected package names in sorted order.
// The returned slice is a copy safe to hand to another goroutine.
func (s *Selection) Snapshot() []string {
	result := make([]string, 0, len(s.members))
	for pkg := range s.members {
		result = append(result, pkg)
	}
	sort.Strings(result)
	return result
}
