package viewlist

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type schemaError struct {
	Path    string
	Line    int
	Message string
}

func (e schemaError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d field %s: %s", e.Line, e.Path, e.Message)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Message)
}

func formatSchemaErrors(path string, errs []schemaError) string {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	var b strings.Builder
	b.WriteString("catalog validation failed for ")
	b.WriteString(path)
	for _, e := range errs {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

func validateCatalogYAML(root *yaml.Node) []schemaError {
	if root == nil || len(root.Content) == 0 {
		return []schemaError{{Path: "catalog", Message: "empty YAML document"}}
	}
	errList := []schemaError{}
	m := validateMapNode(root.Content[0], "catalog", []string{"views"}, []string{"views"}, &errList)
	views, ok := m["views"]
	if !ok {
		return errList
	}
	for i, item := range validateSequenceNode(views, "catalog.views", &errList) {
		vPath := fmt.Sprintf("catalog.views[%d]", i)
		v := validateMapNode(item, vPath, []string{"name", "desc", "viewconfs"}, []string{"name", "viewconfs"}, &errList)
		validateTextNode(v["name"], vPath+".name", true, &errList)
		validateTextNode(v["desc"], vPath+".desc", false, &errList)
		confs, ok := v["viewconfs"]
		if !ok {
			continue
		}
		for j, c := range validateSequenceNode(confs, vPath+".viewconfs", &errList) {
			cPath := fmt.Sprintf("%s.viewconfs[%d]", vPath, j)
			vc := validateMapNode(c, cPath, []string{"jfmv", "name", "desc"}, []string{"jfmv", "name"}, &errList)
			validateTextNode(vc["jfmv"], cPath+".jfmv", true, &errList)
			validateTextNode(vc["name"], cPath+".name", true, &errList)
			validateTextNode(vc["desc"], cPath+".desc", false, &errList)
		}
	}
	return errList
}

func validateMapNode(node *yaml.Node, path string, allowed, required []string, errs *[]schemaError) map[string]*yaml.Node {
	result := map[string]*yaml.Node{}
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Line: 0, Message: "missing object"})
		return result
	}
	if node.Kind != yaml.MappingNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a mapping/object"})
		return result
	}
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}
	seen := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		v := node.Content[i+1]
		key := k.Value
		if prevLine, ok := seen[key]; ok {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: fmt.Sprintf("duplicate key (already defined at line %d)", prevLine)})
			continue
		}
		seen[key] = k.Line
		if !allowedSet[key] {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: "unknown field"})
		}
		result[key] = v
	}
	for _, req := range required {
		if _, ok := result[req]; !ok {
			*errs = append(*errs, schemaError{Path: path + "." + req, Line: node.Line, Message: "missing required field"})
		}
	}
	return result
}

func validateSequenceNode(node *yaml.Node, path string, errs *[]schemaError) []*yaml.Node {
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Line: 0, Message: "missing sequence"})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a sequence/array"})
		return nil
	}
	return node.Content
}

// validateTextNode checks a string field. A missing or null optional field is
// fine; required fields must hold a non-empty scalar.
func validateTextNode(node *yaml.Node, path string, required bool, errs *[]schemaError) {
	if node == nil {
		return
	}
	if node.Kind != yaml.ScalarNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a string"})
		return
	}
	if !required {
		return
	}
	if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must not be empty"})
	}
}
