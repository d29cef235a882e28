package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyar-dev/subxray/internal/link"
	"github.com/saniyar-dev/subxray/internal/sink"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "MyNode", "MyNode"},
		{"spaces become underscores", "My Fast Node", "My_Fast_Node"},
		{"path separators", `a/b\c|d:e`, "a_b_c_d_e"},
		{"angle brackets and wildcards", `<node>*?"x"`, "_node_x_"},
		{"unicode is kept", "节点 🚀 one", "节点__one"},
		{"empty", "", "unnamed_config"},
		{"collapses invalid runs to one underscore", `/\:*?`, "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestPersistWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.Get("file", map[string]interface{}{"dir": dir})
	require.NoError(t, err)

	cfg, err := link.Decode("vless://uuid@1.2.3.4:443?encryption=none&security=tls&sni=example.com#My%20Node")
	require.NoError(t, err)
	require.NoError(t, s.Persist(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "My_Node.json"))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "My Node", doc["remarks"])

	outbounds, ok := doc["outbounds"].([]interface{})
	require.True(t, ok)
	require.Len(t, outbounds, 1)
	outbound := outbounds[0].(map[string]interface{})
	assert.Equal(t, "vless", outbound["protocol"])
	assert.Equal(t, "outbound_My Node", outbound["tag"])

	// indented, not a one-liner
	assert.Contains(t, string(data), "\n    \"outbounds\"")
}

func TestPersistKeepsNonASCIILiteral(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.Get("file", map[string]interface{}{"dir": dir})
	require.NoError(t, err)

	cfg, err := link.Decode("vless://uuid@1.2.3.4:443?encryption=none#узел-один")
	require.NoError(t, err)
	require.NoError(t, s.Persist(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "узел-один.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"узел-один"`)
	assert.NotContains(t, string(data), `\u`)
}

func TestPersistShadowsocksOmitsStreamSettings(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.Get("file", map[string]interface{}{"dir": dir})
	require.NoError(t, err)

	cfg, err := link.Decode("ss://YWVzLTI1Ni1nY206cGFzczEyMw@1.2.3.4:8388#ssnode")
	require.NoError(t, err)
	require.NoError(t, s.Persist(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "ssnode.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "streamSettings")
}

func TestPersistReportsWriteFailure(t *testing.T) {
	s := &Sink{dir: filepath.Join(t.TempDir(), "does", "not", "exist")}

	cfg, err := link.Decode("vless://uuid@1.2.3.4:443?encryption=none#x")
	require.NoError(t, err)

	err = s.Persist(cfg)
	require.Error(t, err)
	var perr *sink.PersistError
	assert.ErrorAs(t, err, &perr)
}
