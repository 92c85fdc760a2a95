// Package paths resolves the path aliases declared in config/paths.json to
// absolute filesystem paths anchored at a repository root.
package paths

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFile is the alias file location relative to the repository root.
var ConfigFile = filepath.Join("config", "paths.json")

// Load reads <root>/config/paths.json and resolves every alias.
func Load(root string) (map[string]string, error) {
	return LoadFile(root, ConfigFile)
}

// LoadFile reads the alias file at file (relative to root unless absolute)
// and resolves every alias against root.
func LoadFile(root, file string) (map[string]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("repository root is required")
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(root, file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read paths config: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode paths config %s: %w", filepath.Base(file), err)
	}
	return Resolve(root, raw)
}

// Resolve maps every raw path to an absolute one. A leading "~" is expanded
// to the home directory. Relative paths are walked from root one segment at a
// time: symbolic links are evaluated as far as they exist on disk before a
// following ".." is applied. Already absolute
// paths are returned as written. Nothing is required to exist.
func Resolve(root string, raw map[string]string) (map[string]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	realRoot := evalExisting(absRoot)
	resolved := make(map[string]string, len(raw))
	for key, value := range raw {
		p, err := ExpandHome(value)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", key, err)
		}
		if !filepath.IsAbs(p) {
			p = resolveUnder(realRoot, p)
		}
		resolved[key] = p
	}
	return resolved, nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are left untouched.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

// FindRoot walks up from start to the first directory holding ConfigFile.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s above %s: %w", ConfigFile, start, os.ErrNotExist)
		}
		dir = parent
	}
}

// resolveUnder joins rel to base segment by segment. A ".." steps up from
// the resolved location, so "link/../x" lands beside the link's target.
func resolveUnder(base, rel string) string {
	cur := base
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}
		cur = filepath.Join(cur, seg)
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			cur = resolved
		}
	}
	return cur
}

// evalExisting evaluates symbolic links in the longest existing prefix of an
// absolute, clean path and re-attaches the remainder.
func evalExisting(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p
	}
	return filepath.Join(evalExisting(parent), filepath.Base(p))
}
