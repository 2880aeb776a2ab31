// Package htmledit post-processes rendered HTML by splicing fragments in at
// anchor substrings.
package htmledit

import "strings"

// DevUtilsScript is the development tooling fragment injected before the
// closing body tag when running in debug mode without client-side routing.
const DevUtilsScript = "<script type='module' src=\"/js/dev.js\"></script>\n"

// Splice inserts fragment at the first occurrence of anchor in html. With
// prepend true the fragment lands immediately before the anchor, otherwise
// immediately after it. When the anchor is absent, html is returned
// unchanged.
func Splice(html, anchor, fragment string, prepend bool) string {
	idx := strings.Index(html, anchor)
	if idx < 0 {
		return html
	}
	if prepend {
		return html[:idx] + fragment + html[idx:]
	}
	end := idx + len(anchor)
	return html[:end] + fragment + html[end:]
}

// AddPostIndex inserts the post index fragment after the first occurrence of
// the configured target element.
func AddPostIndex(html, target, postIndex string) string {
	return Splice(html, target, postIndex, false)
}

// AddDevUtils injects the development utility script just before </body>.
func AddDevUtils(html string) string {
	return Splice(html, "</body>", DevUtilsScript, true)
}

// Inject applies the post-processing pass to a rendered page: the post index
// is always spliced in at its target, and the dev utility script is added
// only when debug is on and client-side routing is off.
func Inject(html, target, postIndex string, debug, clientSideRouting bool) string {
	out := AddPostIndex(html, target, postIndex)
	if debug && !clientSideRouting {
		out = AddDevUtils(out)
	}
	return out
}
