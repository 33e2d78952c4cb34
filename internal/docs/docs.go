// Package docs holds the help pages shown by `kanban docs`.
package docs

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one help page. Title is the page's first heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics returns every page, sorted by name.
func Topics() []Topic {
	paths, _ := fs.Glob(contentFS, "content/*.md")
	out := make([]Topic, 0, len(paths))
	for _, p := range paths {
		name := strings.TrimSuffix(path.Base(p), ".md")
		md, _ := Get(name)
		out = append(out, Topic{Name: name, Title: firstHeading(md, name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the topic names, sorted.
func Names() []string {
	ts := Topics()
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

// Get returns the markdown for a topic; names are matched case-insensitively.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

func firstHeading(md, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(md))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return fallback
}
