package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	modulePath    = "syncacct"
	modulesImport = modulePath + "/internal/modules/"
)

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// forEachImport calls visit with every first-party import of the non-test Go
// files under root.
func forEachImport(t *testing.T, root string, visit func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			if importPath := strings.Trim(imp.Path.Value, `"`); strings.HasPrefix(importPath, modulePath+"/") {
				visit(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	forEachImport(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := locate(file)
		if module == "" || layer == "" || !strings.HasPrefix(importPath, modulesImport) {
			return
		}
		if forbidden(module, layer, importPath) {
			t.Errorf("%s (%s) must not import %s", file, layer, importPath)
		}
	})
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	forEachImport(t, filepath.Join("..", "platform"), func(file, importPath string) {
		if strings.HasPrefix(importPath, modulesImport) {
			t.Errorf("platform package %s imports module %s", file, importPath)
		}
	})
}

// locate splits .../modules/<module>/<layer>/file.go.
func locate(file string) (module, layer string) {
	_, rest, ok := strings.Cut(file, "modules/")
	if !ok {
		return "", ""
	}
	module, rest, ok = strings.Cut(rest, "/")
	if !ok {
		return "", ""
	}
	for _, candidate := range layers {
		if strings.HasPrefix(rest, candidate+"/") {
			return module, candidate
		}
	}
	return module, ""
}

func importLayer(importPath string) string {
	rest := strings.TrimPrefix(importPath, modulesImport)
	_, rest, _ = strings.Cut(rest, "/")
	for _, candidate := range layers {
		if rest == candidate || strings.HasPrefix(rest, candidate+"/") {
			return candidate
		}
	}
	return ""
}

func forbidden(module, layer, importPath string) bool {
	target := importLayer(importPath)
	inner := target == "service" || target == "usecase" || strings.HasPrefix(target, "adapter/")

	if !strings.HasPrefix(importPath, modulesImport+module+"/") {
		// Other modules are reachable only through their inbound port and dto.
		return target != "port/in" && target != "dto"
	}
	switch layer {
	case "adapter/in":
		return target != "port/in" && target != "dto"
	case "usecase":
		return strings.HasPrefix(target, "adapter/")
	case "service":
		return strings.HasPrefix(target, "adapter/") || target == "usecase"
	case "domain", "port/in", "port/out", "dto":
		return inner
	default:
		return false
	}
}
