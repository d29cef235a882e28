package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStreamSettingsDefaults(t *testing.T) {
	ss := BuildStreamSettings(Values{}, "example.com")

	assert.Equal(t, NetworkTCP, ss.Network)
	assert.Equal(t, SecurityNone, ss.Security)
	assert.Nil(t, ss.Sockopt)
	assert.Nil(t, ss.TCPSettings)
	assert.Nil(t, ss.KCPSettings)
	assert.Nil(t, ss.WSSettings)
	assert.Nil(t, ss.HTTPSettings)
	assert.Nil(t, ss.HTTPUpgradeSettings)
	assert.Nil(t, ss.QUICSettings)
	assert.Nil(t, ss.GRPCSettings)
	assert.Nil(t, ss.TLSSettings)
	assert.Nil(t, ss.XTLSSettings)
	assert.Nil(t, ss.RealitySettings)
}

func TestBuildStreamSettingsFirstValueWins(t *testing.T) {
	ss := BuildStreamSettings(Values{"net": {"ws", "tcp"}}, "example.com")
	assert.Equal(t, NetworkWS, ss.Network)
}

func TestBuildStreamSettingsResolutionOrder(t *testing.T) {
	// "net" beats "type", "tls" beats "security"
	ss := BuildStreamSettings(Values{
		"net":      {"grpc"},
		"type":     {"ws"},
		"tls":      {"xtls"},
		"security": {"tls"},
	}, "example.com")
	assert.Equal(t, NetworkGRPC, ss.Network)
	assert.Equal(t, SecurityXTLS, ss.Security)

	// empty first choice falls through
	ss = BuildStreamSettings(Values{
		"net":  {""},
		"type": {"ws"},
	}, "example.com")
	assert.Equal(t, NetworkWS, ss.Network)
}

func TestBuildStreamSettingsTransports(t *testing.T) {
	tests := []struct {
		name     string
		params   Values
		validate func(*testing.T, *StreamSettings)
	}{
		{
			name:   "tcp plain attaches no block",
			params: Values{"net": {"tcp"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Nil(t, ss.TCPSettings)
			},
		},
		{
			name:   "tcp http disguise",
			params: Values{"net": {"tcp"}, "headerType": {"http"}, "path": {"/a,/b"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.TCPSettings)
				assert.Equal(t, "http", ss.TCPSettings.Header.Type)
				assert.Equal(t, []string{"/a", "/b"}, ss.TCPSettings.Header.Request.Path)
				assert.Equal(t, []string{"example.com"}, ss.TCPSettings.Header.Request.Headers["Host"])
			},
		},
		{
			name:   "kcp defaults and seed from path",
			params: Values{"net": {"kcp"}, "path": {"myseed"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				kcp := ss.KCPSettings
				require.NotNil(t, kcp)
				assert.Equal(t, 1350, kcp.MTU)
				assert.Equal(t, 50, kcp.TTI)
				assert.Equal(t, 5, kcp.UplinkCapacity)
				assert.Equal(t, 20, kcp.DownlinkCapacity)
				assert.Equal(t, 2, kcp.ReadBufferSize)
				assert.Equal(t, 2, kcp.WriteBufferSize)
				assert.False(t, kcp.Congestion)
				assert.Equal(t, "none", kcp.Header.Type)
				require.NotNil(t, kcp.Seed)
				assert.Equal(t, "myseed", *kcp.Seed)
			},
		},
		{
			name:   "kcp without path serializes seed as null",
			params: Values{"net": {"kcp"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Nil(t, ss.KCPSettings.Seed)
			},
		},
		{
			name:   "kcp unparsable tuning falls back",
			params: Values{"net": {"kcp"}, "mtu": {"huge"}, "congestion": {"true"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Equal(t, 1350, ss.KCPSettings.MTU)
				assert.True(t, ss.KCPSettings.Congestion)
			},
		},
		{
			name:   "ws defaults to root path and fallback host",
			params: Values{"net": {"ws"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.WSSettings)
				assert.Equal(t, "/", ss.WSSettings.Path)
				assert.Equal(t, "example.com", ss.WSSettings.Host)
			},
		},
		{
			name:   "h2 wraps host in a list",
			params: Values{"net": {"h2"}, "host": {"h2.example.com"}, "path": {"/h2"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.HTTPSettings)
				assert.Equal(t, []string{"h2.example.com"}, ss.HTTPSettings.Host)
				assert.Equal(t, "/h2", ss.HTTPSettings.Path)
			},
		},
		{
			name:   "httpupgrade",
			params: Values{"net": {"httpupgrade"}, "path": {"/up"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.HTTPUpgradeSettings)
				assert.Equal(t, "/up", ss.HTTPUpgradeSettings.Path)
				assert.Equal(t, "example.com", ss.HTTPUpgradeSettings.Host)
			},
		},
		{
			name:   "quic",
			params: Values{"net": {"quic"}, "quicSecurity": {"aes-128-gcm"}, "key": {"k"}, "headerType": {"srtp"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.QUICSettings)
				assert.Equal(t, "aes-128-gcm", ss.QUICSettings.Security)
				assert.Equal(t, "k", ss.QUICSettings.Key)
				assert.Equal(t, "srtp", ss.QUICSettings.Header.Type)
			},
		},
		{
			name:   "grpc multi mode",
			params: Values{"net": {"grpc"}, "serviceName": {"svc"}, "mode": {"multi"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.GRPCSettings)
				assert.Equal(t, "svc", ss.GRPCSettings.ServiceName)
				assert.True(t, ss.GRPCSettings.MultiMode)
			},
		},
		{
			name:   "grpc gun mode",
			params: Values{"net": {"grpc"}, "mode": {"gun"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.False(t, ss.GRPCSettings.MultiMode)
			},
		},
		{
			name:   "unknown network passes through",
			params: Values{"net": {"splithttp"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Equal(t, Network("splithttp"), ss.Network)
				assert.Nil(t, ss.TCPSettings)
				assert.Nil(t, ss.WSSettings)
				assert.Nil(t, ss.GRPCSettings)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, BuildStreamSettings(tt.params, "example.com"))
		})
	}
}

func TestBuildStreamSettingsSecurity(t *testing.T) {
	tests := []struct {
		name     string
		params   Values
		validate func(*testing.T, *StreamSettings)
	}{
		{
			name:   "tls with sni alpn fingerprint",
			params: Values{"security": {"tls"}, "sni": {"sni.example.com"}, "alpn": {"h2,http/1.1"}, "fp": {"chrome"}, "allowInsecure": {"true"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				require.NotNil(t, ss.TLSSettings)
				assert.Nil(t, ss.XTLSSettings)
				assert.Equal(t, "sni.example.com", ss.TLSSettings.ServerName)
				assert.Equal(t, []string{"h2", "http/1.1"}, ss.TLSSettings.ALPN)
				assert.Equal(t, "chrome", ss.TLSSettings.Fingerprint)
				assert.True(t, ss.TLSSettings.AllowInsecure)
				assert.Empty(t, ss.TLSSettings.Flow)
			},
		},
		{
			name:   "tls serverName falls back to peer then host",
			params: Values{"security": {"tls"}, "peer": {"peer.example.com"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Equal(t, "peer.example.com", ss.TLSSettings.ServerName)
			},
		},
		{
			name:   "tls serverName defaults to the link host",
			params: Values{"security": {"tls"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Equal(t, "example.com", ss.TLSSettings.ServerName)
				assert.False(t, ss.TLSSettings.AllowInsecure)
			},
		},
		{
			name:   "xtls attaches flow under its own key",
			params: Values{"security": {"xtls"}, "flow": {"xtls-rprx-direct"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Nil(t, ss.TLSSettings)
				require.NotNil(t, ss.XTLSSettings)
				assert.Equal(t, "xtls-rprx-direct", ss.XTLSSettings.Flow)
			},
		},
		{
			name:   "reality defaults",
			params: Values{"security": {"reality"}, "pbk": {"pub"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				r := ss.RealitySettings
				require.NotNil(t, r)
				assert.Equal(t, "example.com", r.ServerName)
				assert.Equal(t, "chrome", r.Fingerprint)
				assert.Equal(t, "pub", r.PublicKey)
				assert.Equal(t, "", r.ShortID)
				assert.Equal(t, "/", r.SpiderX)
			},
		},
		{
			name:   "none attaches nothing",
			params: Values{"security": {"none"}},
			validate: func(t *testing.T, ss *StreamSettings) {
				assert.Nil(t, ss.TLSSettings)
				assert.Nil(t, ss.XTLSSettings)
				assert.Nil(t, ss.RealitySettings)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, BuildStreamSettings(tt.params, "example.com"))
		})
	}
}

func TestBuildStreamSettingsSockopt(t *testing.T) {
	ss := BuildStreamSettings(Values{}, "example.com")
	assert.Nil(t, ss.Sockopt)

	ss = BuildStreamSettings(Values{"mark": {"255"}, "tcpFastOpen": {"true"}, "tproxy": {"redirect"}}, "example.com")
	require.NotNil(t, ss.Sockopt)
	require.NotNil(t, ss.Sockopt.Mark)
	assert.Equal(t, 255, *ss.Sockopt.Mark)
	require.NotNil(t, ss.Sockopt.TCPFastOpen)
	assert.True(t, *ss.Sockopt.TCPFastOpen)
	assert.Equal(t, "redirect", ss.Sockopt.TProxy)

	ss = BuildStreamSettings(Values{"tproxy": {"tproxy"}}, "example.com")
	require.NotNil(t, ss.Sockopt)
	assert.Nil(t, ss.Sockopt.Mark)
	assert.Nil(t, ss.Sockopt.TCPFastOpen)
}
