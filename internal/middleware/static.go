package middleware

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// Static serves files under dir for GET and HEAD requests whose path names
// an existing file (or a directory with an index.html). Anything else
// continues down the pipeline.
func Static(dir string) Middleware {
	fsys := os.DirFS(dir)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name, ok := staticFile(fsys, r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			http.ServeFileFS(w, r, fsys, name)
		})
	}
}

// staticFile resolves a URL path to a regular file inside fsys.
func staticFile(fsys fs.FS, urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", false
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return "", false
	}

	if info.IsDir() {
		index := path.Join(name, "index.html")
		info, err = fs.Stat(fsys, index)
		if err != nil || !info.Mode().IsRegular() {
			return "", false
		}
		return index, true
	}

	return name, info.Mode().IsRegular()
}
