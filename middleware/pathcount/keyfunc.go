package pathcount

import (
	"net/http"
	"net/url"
	"strings"
)

type KeyFunc func(r *http.Request) string

// PathKey devolve o primeiro segmento do path, decodificado depois do corte.
// "/foo/bar" -> "foo", "/" -> "", "/a%2Fb/c" -> "a/b".
func PathKey(r *http.Request) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(r.URL.EscapedPath(), "/"), "/")
	if dec, err := url.PathUnescape(seg); err == nil {
		return dec
	}
	return seg
}
