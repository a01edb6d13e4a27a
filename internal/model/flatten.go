package model

// FlatElementInfo is an element with a path breadcrumb instead of children.
type FlatElementInfo struct {
	ElementInfo `yaml:",inline"`
	Path        string `yaml:"p,omitempty" json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list in
// depth-first order. Each element gets a path of role tags joined with " > ".
func FlattenElements(elements []ElementInfo) []FlatElementInfo {
	var result []FlatElementInfo
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el ElementInfo, parentPath string, result *[]FlatElementInfo) {
	currentPath := el.RoleName
	if parentPath != "" {
		currentPath = parentPath + " > " + el.RoleName
	}

	flat := el
	flat.Children = nil
	*result = append(*result, FlatElementInfo{ElementInfo: flat, Path: currentPath})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
