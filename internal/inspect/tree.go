// Package inspect turns element subtrees into serializable trees and
// renders layout maps of their rectangles.
package inspect

import (
	"fmt"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/model"
	"github.com/mj1618/uisoup/internal/platform"
)

// Describe captures one element without its children.
func Describe(el *element.Element) model.ElementInfo {
	info := model.ElementInfo{
		Role:     el.Role(),
		RoleName: el.RoleName(),
		Name:     el.Name(),
		CName:    el.CombinedName(),
		Enabled:  el.IsEnabled(),
		Selected: el.IsSelected(),
		Checked:  el.IsChecked(),
		TopLevel: el.IsTopLevelWindow(),
	}
	if v := el.Value(); v != nil {
		info.Value = fmt.Sprint(v)
	}
	if b, err := el.Location(); err == nil {
		info.Bounds = b.Array()
	}
	return info
}

// Tree captures el and its descendants down to maxDepth levels below it
// (0 = unlimited).
func Tree(el *element.Element, maxDepth int) model.ElementInfo {
	seen := make(map[platform.Node]bool)
	return walk(el, 0, maxDepth, seen)
}

func walk(el *element.Element, depth, maxDepth int, seen map[platform.Node]bool) model.ElementInfo {
	seen[el.Node()] = true
	info := Describe(el)
	if maxDepth > 0 && depth >= maxDepth {
		return info
	}
	for _, child := range el.Children() {
		if seen[child.Node()] {
			continue
		}
		info.Children = append(info.Children, walk(child, depth+1, maxDepth, seen))
	}
	return info
}

// DescribeAll describes each element without its children.
func DescribeAll(els []*element.Element) []model.ElementInfo {
	out := make([]model.ElementInfo, 0, len(els))
	for _, el := range els {
		out = append(out, Describe(el))
	}
	return out
}
