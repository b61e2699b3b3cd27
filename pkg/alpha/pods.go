package alpha

import (
	"bytes"
	"slices"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rawPod is a pod as found in the result document, before formatting.
type rawPod struct {
	title string
	text  string
}

// extractPods returns every <div class="pod"> of doc that has a title. The
// text of a pod is the alt text of its first image or, for pods without an
// image, the pod markup converted to plain text.
func extractPods(doc string) ([]rawPod, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var pods []rawPod
	walk(root, func(n *html.Node) bool {
		if !isElement(n, atom.Div) || !hasClass(n, "pod") {
			return true
		}

		heading := first(n, atom.H2)
		if heading == nil {
			return false
		}

		pod := rawPod{title: podTitle(textContent(heading))}
		if img := first(n, atom.Img); img != nil {
			pod.text = attr(img, "alt")
		} else {
			pod.text = markupText(n)
		}
		pods = append(pods, pod)

		return false
	})

	return pods, nil
}

// podTitle drops the colon that closes every pod heading.
func podTitle(heading string) string {
	return strings.TrimSuffix(strings.TrimSpace(heading), ":")
}

// walk visits n and its descendants depth first. Children are skipped when
// visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func first(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c != n && isElement(c, a) {
			found = c
			return false
		}
		return true
	})
	return found
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func markupText(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return textContent(n)
	}
	return html2text.HTML2Text(buf.String())
}
