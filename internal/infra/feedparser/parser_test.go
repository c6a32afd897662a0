package feedparser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
)

func buildFeed(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss><channel><title>Feed</title>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>https://example.com/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestParse_CapAndOrder(t *testing.T) {
	p := New()

	for _, n := range []int{0, 1, 9, 10, 11, 25} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			got := p.Parse(buildFeed(n), "bbc")
			want := n
			if want > MaxItems {
				want = MaxItems
			}
			require.Len(t, got, want)
			for i, e := range got {
				assert.Equal(t, fmt.Sprintf("Item %d", i+1), e.Title)
			}
		})
	}
}

func TestParse_TitleIsMandatory(t *testing.T) {
	raw := `<item><description>no title</description><link>https://a</link></item>
<item><title></title><description>empty title</description></item>
<item><title>Kept</title></item>`

	got := New().Parse(raw, "reuters")

	require.Len(t, got, 1)
	assert.Equal(t, entity.FeedEntry{Title: "Kept", SourceName: "Reuters"}, got[0])
}

func TestParse_CapCountsOnlyTitledItems(t *testing.T) {
	raw := "<item><link>x</link></item>" + buildFeed(10)

	got := New().Parse(raw, "bbc")

	require.Len(t, got, 10)
	assert.Equal(t, "Item 10", got[9].Title)
}

func TestParse_SanitizesFields(t *testing.T) {
	raw := `<item rdf:about="x">
  <title><![CDATA[Breaking: <b>Markets</b> Rally]]></title>
  <description><![CDATA[<p>Stocks &amp; bonds rose.</p>]]></description>
  <link> https://www.aljazeera.com/news/1 </link>
</item>`

	got := New().Parse(raw, "aljazeera")

	require.Len(t, got, 1)
	assert.Equal(t, "Breaking: Markets Rally", got[0].Title)
	assert.Equal(t, "Stocks & bonds rose.", got[0].Description)
	assert.Equal(t, "Aljazeera", got[0].SourceName)
}

func TestParse_LinkKeptAsExtracted(t *testing.T) {
	raw := `<item><title>A</title><link> https://www.aljazeera.com/news/1 </link></item>
<item><title>B</title><link><![CDATA[https://x/2]]></link></item>`

	got := New().Parse(raw, "aljazeera")

	require.Len(t, got, 2)
	assert.Equal(t, " https://www.aljazeera.com/news/1 ", got[0].Link)
	assert.Equal(t, "<![CDATA[https://x/2]]>", got[1].Link)
}

func TestParse_MalformedInput(t *testing.T) {
	p := New()

	for _, raw := range []string{"", "not xml at all", "<item><title>unterminated", "<html><body>404</body></html>"} {
		assert.Empty(t, p.Parse(raw, "bbc"), "input %q", raw)
	}
}

type fakeExtractor map[string]string

func (f fakeExtractor) Extract(_, tag string) (string, bool) {
	v, ok := f[tag]
	return v, ok
}

func TestParse_UsesExtractor(t *testing.T) {
	p := &Parser{Extractor: fakeExtractor{"title": "From fake", "description": "&lt;ok&gt;"}, Limit: 2}

	got := p.Parse(buildFeed(5), "bbc")

	require.Len(t, got, 2)
	assert.Equal(t, "From fake", got[0].Title)
	assert.Equal(t, "<ok>", got[0].Description)
	assert.Equal(t, "", got[0].Link)
}
