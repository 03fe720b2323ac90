package crawl_test

import (
	"testing"

	"github.com/fwojciec/askdocs/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.com/x", crawl.TruncateURL("https://a.com/x", 20))
	assert.Equal(t, "...example.com/docs/page", crawl.TruncateURL("https://www.example.com/docs/page", 24))
	assert.Equal(t, "", crawl.TruncateURL("https://a.com", 0))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1850))
}
