package link

import "strings"

// Network is the transport layer of a stream. Unknown values pass through
// with no transport sub-block attached.
type Network string

const (
	NetworkTCP         Network = "tcp"
	NetworkKCP         Network = "kcp"
	NetworkWS          Network = "ws"
	NetworkH2          Network = "h2"
	NetworkHTTPUpgrade Network = "httpupgrade"
	NetworkQUIC        Network = "quic"
	NetworkGRPC        Network = "grpc"
)

// Security is the encryption layer of a stream. "none" and unknown values
// attach no security sub-block.
type Security string

const (
	SecurityNone    Security = "none"
	SecurityTLS     Security = "tls"
	SecurityXTLS    Security = "xtls"
	SecurityReality Security = "reality"
)

type StreamSettings struct {
	Network  Network  `json:"network"`
	Security Security `json:"security"`

	Sockopt *SockoptSettings `json:"sockopt,omitempty"`

	TCPSettings         *TCPSettings         `json:"tcpSettings,omitempty"`
	KCPSettings         *KCPSettings         `json:"kcpSettings,omitempty"`
	WSSettings          *WSSettings          `json:"wsSettings,omitempty"`
	HTTPSettings        *HTTPSettings        `json:"httpSettings,omitempty"`
	HTTPUpgradeSettings *HTTPUpgradeSettings `json:"httpUpgradeSettings,omitempty"`
	QUICSettings        *QUICSettings        `json:"quicSettings,omitempty"`
	GRPCSettings        *GRPCSettings        `json:"grpcSettings,omitempty"`

	TLSSettings     *TLSSettings     `json:"tlsSettings,omitempty"`
	XTLSSettings    *TLSSettings     `json:"xtlsSettings,omitempty"`
	RealitySettings *RealitySettings `json:"realitySettings,omitempty"`
}

type SockoptSettings struct {
	Mark        *int   `json:"mark,omitempty"`
	TCPFastOpen *bool  `json:"tcpFastOpen,omitempty"`
	TProxy      string `json:"tproxy,omitempty"`
}

type TCPSettings struct {
	Header TCPHeader `json:"header"`
}

type TCPHeader struct {
	Type    string     `json:"type"`
	Request TCPRequest `json:"request"`
}

type TCPRequest struct {
	Path    []string            `json:"path"`
	Headers map[string][]string `json:"headers"`
}

type KCPSettings struct {
	MTU              int       `json:"mtu"`
	TTI              int       `json:"tti"`
	UplinkCapacity   int       `json:"uplinkCapacity"`
	DownlinkCapacity int       `json:"downlinkCapacity"`
	Congestion       bool      `json:"congestion"`
	ReadBufferSize   int       `json:"readBufferSize"`
	WriteBufferSize  int       `json:"writeBufferSize"`
	Header           KCPHeader `json:"header"`
	Seed             *string   `json:"seed"`
}

type KCPHeader struct {
	Type string `json:"type"`
}

type WSSettings struct {
	Path string `json:"path"`
	Host string `json:"Host"`
}

type HTTPSettings struct {
	Host []string `json:"host"`
	Path string   `json:"path"`
}

type HTTPUpgradeSettings struct {
	Path string `json:"path"`
	Host string `json:"host"`
}

type QUICSettings struct {
	Security string    `json:"security"`
	Key      string    `json:"key"`
	Header   KCPHeader `json:"header"`
}

type GRPCSettings struct {
	ServiceName string `json:"serviceName"`
	MultiMode   bool   `json:"multiMode"`
}

// TLSSettings covers both tls and xtls; the attachment key picks the variant.
type TLSSettings struct {
	ServerName    string   `json:"serverName"`
	AllowInsecure bool     `json:"allowInsecure"`
	ALPN          []string `json:"alpn,omitempty"`
	Fingerprint   string   `json:"fingerprint,omitempty"`
	Flow          string   `json:"flow,omitempty"`
}

type RealitySettings struct {
	ServerName  string `json:"serverName"`
	Fingerprint string `json:"fingerprint"`
	PublicKey   string `json:"publicKey"`
	ShortID     string `json:"shortId"`
	SpiderX     string `json:"spiderX"`
}

// BuildStreamSettings maps share-link parameters onto a stream configuration.
// It is total: missing or unparsable values fall back to their defaults, and
// unrecognized network/security values simply attach no sub-block.
func BuildStreamSettings(params Values, defaultHost string) *StreamSettings {
	ss := &StreamSettings{
		Network:  Network(params.StrOr("tcp", "net", "type")),
		Security: Security(params.StrOr("none", "tls", "security")),
	}

	if sockopt := buildSockopt(params); sockopt != nil {
		ss.Sockopt = sockopt
	}

	switch ss.Network {
	case NetworkTCP:
		if params.Str("headerType", "none") == "http" {
			ss.TCPSettings = &TCPSettings{
				Header: TCPHeader{
					Type: "http",
					Request: TCPRequest{
						Path:    strings.Split(params.Str("path", "/"), ","),
						Headers: map[string][]string{"Host": {params.Str("host", defaultHost)}},
					},
				},
			}
		}
	case NetworkKCP:
		kcp := &KCPSettings{
			MTU:              params.Int("mtu", 1350),
			TTI:              params.Int("tti", 50),
			UplinkCapacity:   params.Int("uplinkCapacity", 5),
			DownlinkCapacity: params.Int("downlinkCapacity", 20),
			Congestion:       params.Bool("congestion"),
			ReadBufferSize:   params.Int("readBufferSize", 2),
			WriteBufferSize:  params.Int("writeBufferSize", 2),
			Header:           KCPHeader{Type: params.Str("headerType", "none")},
		}
		// mKCP has no seed parameter of its own; share links reuse "path".
		if seed, ok := params.First("path"); ok {
			kcp.Seed = &seed
		}
		ss.KCPSettings = kcp
	case NetworkWS:
		ss.WSSettings = &WSSettings{
			Path: params.Str("path", "/"),
			Host: params.Str("host", defaultHost),
		}
	case NetworkH2:
		ss.HTTPSettings = &HTTPSettings{
			Host: []string{params.Str("host", defaultHost)},
			Path: params.Str("path", "/"),
		}
	case NetworkHTTPUpgrade:
		ss.HTTPUpgradeSettings = &HTTPUpgradeSettings{
			Path: params.Str("path", "/"),
			Host: params.Str("host", defaultHost),
		}
	case NetworkQUIC:
		ss.QUICSettings = &QUICSettings{
			Security: params.Str("quicSecurity", "none"),
			Key:      params.Str("key", ""),
			Header:   KCPHeader{Type: params.Str("headerType", "none")},
		}
	case NetworkGRPC:
		ss.GRPCSettings = &GRPCSettings{
			ServiceName: params.Str("serviceName", ""),
			MultiMode:   params.Str("mode", "") == "multi",
		}
	}

	switch ss.Security {
	case SecurityTLS, SecurityXTLS:
		tls := &TLSSettings{
			ServerName:    params.StrOr(defaultHost, "sni", "peer"),
			AllowInsecure: params.Bool("allowInsecure"),
		}
		if alpn := params.Str("alpn", ""); alpn != "" {
			tls.ALPN = strings.Split(alpn, ",")
		}
		if fp := params.Str("fp", ""); fp != "" {
			tls.Fingerprint = fp
		}
		if ss.Security == SecurityXTLS {
			if flow := params.Str("flow", ""); flow != "" {
				tls.Flow = flow
			}
			ss.XTLSSettings = tls
		} else {
			ss.TLSSettings = tls
		}
	case SecurityReality:
		ss.RealitySettings = &RealitySettings{
			ServerName:  params.StrOr(defaultHost, "sni", "peer"),
			Fingerprint: params.Str("fp", "chrome"),
			PublicKey:   params.Str("pbk", ""),
			ShortID:     params.Str("sid", ""),
			SpiderX:     params.Str("spx", "/"),
		}
	}

	return ss
}

func buildSockopt(params Values) *SockoptSettings {
	if !params.Has("mark") && !params.Has("tcpFastOpen") && !params.Has("tproxy") {
		return nil
	}

	so := &SockoptSettings{}
	if params.Has("mark") {
		mark := params.Int("mark", 0)
		so.Mark = &mark
	}
	if params.Has("tcpFastOpen") {
		tfo := params.Bool("tcpFastOpen")
		so.TCPFastOpen = &tfo
	}
	if v := params.Str("tproxy", ""); v != "" {
		so.TProxy = v
	}
	return so
}
