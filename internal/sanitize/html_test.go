package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLKeepsFormattingAndDropsScripts(t *testing.T) {
	out := HTML(`<p>Лучший <strong>институт</strong></p><script>alert(1)</script>`)

	assert.Equal(t, `<p>Лучший <strong>институт</strong></p>`, out)
}

func TestHTMLDropsEventHandlers(t *testing.T) {
	out := HTML(`<a href="https://example.org" onclick="steal()">site</a>`)

	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `href="https://example.org"`)
}

func TestText(t *testing.T) {
	assert.Equal(t, "bold", Text("  <b>bold</b> "))
}

func TestHTMLPtr(t *testing.T) {
	assert.Nil(t, HTMLPtr(nil))

	in := "<i>ok</i><iframe></iframe>"
	assert.Equal(t, "<i>ok</i>", *HTMLPtr(&in))
}

func TestHTMLLeavesPlainTextUnescaped(t *testing.T) {
	for _, in := range []string{
		`Курс "Python" & 'Go'`,
		`Курс "Python" & 'Go' для 5 < 7`,
		`AT&amp;T`,
		`<p>Курс "Python" & 'Go'</p>`,
	} {
		assert.Equal(t, in, HTML(in), in)
	}
}

func TestTextLeavesPlainTextUnescaped(t *testing.T) {
	assert.Equal(t, `Tom & "Jerry"`, Text(` Tom & "Jerry" `))
}
