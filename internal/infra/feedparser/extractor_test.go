package feedparser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexExtractor_Extract(t *testing.T) {
	e := NewRegexExtractor()

	doc := `<TITLE lang="en">First</TITLE><title>Second</title><description>
multi
line</description>`

	got, ok := e.Extract(doc, "title")
	assert.True(t, ok)
	assert.Equal(t, "First", got)

	got, ok = e.Extract(doc, "description")
	assert.True(t, ok)
	assert.Equal(t, "\nmulti\nline", got)

	_, ok = e.Extract(doc, "link")
	assert.False(t, ok)
}

func TestRegexExtractor_EmptyElement(t *testing.T) {
	var e RegexExtractor

	got, ok := e.Extract("<link></link>", "link")
	assert.True(t, ok)
	assert.Equal(t, "", got)
}

func TestRegexExtractor_Concurrent(t *testing.T) {
	e := NewRegexExtractor()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := e.Extract("<title>x</title>", "title")
			assert.True(t, ok)
			assert.Equal(t, "x", got)
		}()
	}
	wg.Wait()
}
