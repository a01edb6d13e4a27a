package model

import "sort"

// UnknownRole is the tag reported for platform roles missing from RoleMap.
const UnknownRole = "unknown"

// RoleMap maps macOS AXRole values to the short role tags used in combined
// element names (e.g. "btn" + "OK" = "btnOK").
var RoleMap = map[string]string{
	"AXWindow":             "frm",
	"AXTextArea":           "txt",
	"AXTextField":          "txt",
	"AXButton":             "btn",
	"AXStaticText":         "lbl",
	"AXRadioButton":        "rbtn",
	"AXSlider":             "sldr",
	"AXCell":               "tblc",
	"AXImage":              "img",
	"AXToolbar":            "tbar",
	"AXScrollBar":          "scbr",
	"AXMenuItem":           "mnu",
	"AXMenu":               "mnu",
	"AXMenuBar":            "mnu",
	"AXMenuBarItem":        "mnu",
	"AXCheckBox":           "chk",
	"AXTabGroup":           "ptl",
	"AXList":               "lst",
	"AXMenuButton":         "cbo",
	"AXRow":                "tblc",
	"AXColumn":             "col",
	"AXTable":              "tbl",
	"AXScrollArea":         "sar",
	"AXOutline":            "otl",
	"AXValueIndicator":     "val",
	"AXDisclosureTriangle": "dct",
	"AXGroup":              "grp",
	"AXPopUpButton":        "pubtn",
	"AXApplication":        "app",
	"AXDocItem":            "doc",
	"AXHeading":            "tch",
	"AXGenericElement":     "gen",
	"AXLink":               "lnk",
}

// Role tags with dedicated state checks.
const (
	RoleRadioButton = "rbtn"
	RoleCheckBox    = "chk"
)

// knownTags holds every distinct tag, longest first.
var knownTags = func() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, tag := range RoleMap {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		if len(tags[i]) != len(tags[j]) {
			return len(tags[i]) > len(tags[j])
		}
		return tags[i] < tags[j]
	})
	return tags
}()

// MapRole converts a raw accessibility role to its short tag.
func MapRole(axRole string) string {
	if short, ok := RoleMap[axRole]; ok {
		return short
	}
	return UnknownRole
}

// IsKnownTag reports whether tag is produced by RoleMap or is UnknownRole.
func IsKnownTag(tag string) bool {
	if tag == UnknownRole {
		return true
	}
	for _, t := range knownTags {
		if t == tag {
			return true
		}
	}
	return false
}

// PlatformRoles returns the AXRole values that map to tag, sorted.
func PlatformRoles(tag string) []string {
	var roles []string
	for ax, short := range RoleMap {
		if short == tag {
			roles = append(roles, ax)
		}
	}
	sort.Strings(roles)
	return roles
}
