package qr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type svgElements struct {
	root   xml.StartElement
	counts map[string]int
	hrefs  []string
}

func parseSVG(t *testing.T, doc []byte) svgElements {
	t.Helper()
	out := svgElements{counts: map[string]int{}}
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "svg" {
			out.root = se
		}
		out.counts[se.Name.Local]++
		if se.Name.Local == "image" {
			for _, a := range se.Attr {
				if a.Name.Local == "href" {
					out.hrefs = append(out.hrefs, a.Value)
				}
			}
		}
	}
	return out
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func TestWriteSVG(t *testing.T) {
	_, scene := composeAlice(t, Jasu)

	var buf bytes.Buffer
	require.NoError(t, scene.WriteSVG(&buf))

	els := parseSVG(t, buf.Bytes())
	side := scene.ViewBox
	assert.Equal(t, "0 0 "+strconv.Itoa(side)+" "+strconv.Itoa(side), attr(els.root, "viewBox"))
	assert.Equal(t, strconv.Itoa(side), attr(els.root, "width"))

	modules := len(nodesWithRole(scene, RoleModule))
	assert.Equal(t, modules+9, els.counts["path"])
	assert.Equal(t, 2, els.counts["rect"], "background and cartouche")
	assert.Equal(t, 1, els.counts["image"])
	assert.Equal(t, 1, els.counts["g"])
	assert.Equal(t, []string{remoteLogo}, els.hrefs)
	assert.Contains(t, buf.String(), `fill="#71AA50"`)
}

func TestWriteSVGSquareModules(t *testing.T) {
	style := Jasu
	style.ModuleRadius = 0
	_, scene := composeAlice(t, style)

	var buf bytes.Buffer
	require.NoError(t, scene.WriteSVG(&buf))

	els := parseSVG(t, buf.Bytes())
	modules := len(nodesWithRole(scene, RoleModule))
	assert.Equal(t, 9, els.counts["path"], "only finders are paths")
	assert.Equal(t, modules+2, els.counts["rect"])
}

func TestWriteSVGExportSize(t *testing.T) {
	_, scene := composeAlice(t, Jasu)

	var buf bytes.Buffer
	require.NoError(t, scene.WithSize(1000).WithLogo("data:image/png;base64,AAAA").WriteSVG(&buf))

	els := parseSVG(t, buf.Bytes())
	assert.Equal(t, "1000", attr(els.root, "width"))
	assert.Equal(t, "1000", attr(els.root, "height"))
	assert.True(t, strings.HasSuffix(attr(els.root, "viewBox"), strconv.Itoa(scene.ViewBox)))
	assert.Equal(t, []string{"data:image/png;base64,AAAA"}, els.hrefs)
}

func TestWriteSVGEscapesLogoHref(t *testing.T) {
	m, _ := composeAlice(t, Jasu)
	href := `https://cdn.example.com/logo.png?w=64&h=64&alt="jasu"`
	scene := Compose(m, Jasu, href)

	var buf bytes.Buffer
	require.NoError(t, scene.WriteSVG(&buf))

	els := parseSVG(t, buf.Bytes())
	assert.Equal(t, []string{href}, els.hrefs)
	assert.Contains(t, buf.String(), "w=64&amp;h=64")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteErrors(t *testing.T) {
	_, scene := composeAlice(t, Jasu)
	assert.EqualError(t, scene.WriteSVG(failingWriter{}), "disk full")
}
