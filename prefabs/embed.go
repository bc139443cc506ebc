package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns a prefab file. A copy under prefabs/ on disk wins over the
// embedded one so edits are picked up without rebuilding.
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, relPath(name))
}

// LoadScript is Load for tengo input scripts. The scripts/ prefix and the
// .tengo extension are optional.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, scriptPath(name))
}

func readOverride(fsys embed.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(rel)
}

func scriptPath(name string) string {
	rel := strings.TrimPrefix(relPath(name), "scripts/")
	if rel == "" {
		return ""
	}
	if path.Ext(rel) != ".tengo" {
		rel += ".tengo"
	}
	return path.Join("scripts", rel)
}

// relPath turns a caller supplied name into a slash path relative to the
// prefabs directory.
func relPath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}
