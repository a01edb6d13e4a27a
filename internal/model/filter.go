package model

import "strings"

// FilterByRoleNames keeps elements whose short role tag is in roles.
// Children of dropped elements are promoted when they match.
func FilterByRoleNames(elements []ElementInfo, roles []string) []ElementInfo {
	if len(roles) == 0 {
		return elements
	}
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return filterByRoleSet(elements, roleSet)
}

func filterByRoleSet(elements []ElementInfo, roleSet map[string]bool) []ElementInfo {
	var result []ElementInfo
	for _, el := range elements {
		var filteredChildren []ElementInfo
		if len(el.Children) > 0 {
			filteredChildren = filterByRoleSet(el.Children, roleSet)
		}

		if roleSet[el.RoleName] {
			filtered := el
			filtered.Children = filteredChildren
			result = append(result, filtered)
		} else if len(filteredChildren) > 0 {
			result = append(result, filteredChildren...)
		}
	}
	return result
}

// FilterByText keeps elements whose name or value contains text
// (case-insensitive), along with the ancestors of any match.
func FilterByText(elements []ElementInfo, text string) []ElementInfo {
	if text == "" {
		return elements
	}
	return filterByText(elements, strings.ToLower(text))
}

func filterByText(elements []ElementInfo, textLower string) []ElementInfo {
	var result []ElementInfo
	for _, el := range elements {
		matched := strings.Contains(strings.ToLower(el.Name), textLower) ||
			strings.Contains(strings.ToLower(el.Value), textLower)
		childMatches := filterByText(el.Children, textLower)

		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// isEmptyGroup reports whether el is an anonymous grp or unknown node.
func isEmptyGroup(el ElementInfo) bool {
	return (el.RoleName == "grp" || el.RoleName == UnknownRole) &&
		el.Name == "" && el.Value == ""
}

// PruneEmptyGroups removes anonymous group and unknown nodes, promoting
// their children to the parent.
func PruneEmptyGroups(elements []ElementInfo) []ElementInfo {
	var result []ElementInfo
	for _, el := range elements {
		prunedChildren := PruneEmptyGroups(el.Children)

		if isEmptyGroup(el) {
			result = append(result, prunedChildren...)
		} else {
			pruned := el
			pruned.Children = prunedChildren
			result = append(result, pruned)
		}
	}
	return result
}

// BoundsIntersect checks if two [x, y, width, height] rectangles overlap.
func BoundsIntersect(a, b [4]int) bool {
	ax1, ay1, ax2, ay2 := a[0], a[1], a[0]+a[2], a[1]+a[3]
	bx1, by1, bx2, by2 := b[0], b[1], b[0]+b[2], b[1]+b[3]
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}

// FilterByBounds keeps elements whose bounds intersect bbox, along with the
// ancestors of any match.
func FilterByBounds(elements []ElementInfo, bbox [4]int) []ElementInfo {
	var result []ElementInfo
	for _, el := range elements {
		childMatches := FilterByBounds(el.Children, bbox)
		if BoundsIntersect(el.Bounds, bbox) || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}
