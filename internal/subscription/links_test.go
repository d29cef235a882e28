package subscription

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinks(t *testing.T) {
	doc := "vless://uuid@1.2.3.4:443#a\n\n  \ntrojan://pw@5.6.7.8:443#b\r\nss://abcd#c\n"
	body := []byte(base64.StdEncoding.EncodeToString([]byte(doc)))

	links, err := Links(body)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"vless://uuid@1.2.3.4:443#a",
		"trojan://pw@5.6.7.8:443#b",
		"ss://abcd#c",
	}, links)
}

func TestLinksTrimsSurroundingWhitespace(t *testing.T) {
	body := []byte("  " + base64.StdEncoding.EncodeToString([]byte("vmess://x")) + "\n")

	links, err := Links(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"vmess://x"}, links)
}

func TestLinksRejectsNonBase64(t *testing.T) {
	_, err := Links([]byte("this is !!! not base64 at all"))
	assert.Error(t, err)
}

func TestLinksEmptyDocument(t *testing.T) {
	links, err := Links([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, links)
}
