package link

// Config is the normalized result of decoding one share link. It serializes
// to the file shape the proxy engine consumes: a single-outbound "outbounds"
// array plus the human-readable remarks the filename derives from.
type Config struct {
	Outbounds []Outbound `json:"outbounds"`
	Remarks   string     `json:"remarks"`

	// Endpoint metadata kept off the wire, for history and diagnostics.
	Address string `json:"-"`
	Port    int    `json:"-"`
}

type Outbound struct {
	Protocol       string          `json:"protocol"`
	Settings       interface{}     `json:"settings"`
	StreamSettings *StreamSettings `json:"streamSettings,omitempty"`
	Tag            string          `json:"tag"`
}

// --- vmess / vless ---

type VmessSettings struct {
	Vnext []VmessServer `json:"vnext"`
}

type VmessServer struct {
	Address string      `json:"address"`
	Port    int         `json:"port"`
	Users   []VmessUser `json:"users"`
}

type VmessUser struct {
	ID       string `json:"id"`
	AlterID  int    `json:"alterId"`
	Security string `json:"security"`
	Level    int    `json:"level"`
}

type VlessSettings struct {
	Vnext []VlessServer `json:"vnext"`
}

type VlessServer struct {
	Address string      `json:"address"`
	Port    int         `json:"port"`
	Users   []VlessUser `json:"users"`
}

type VlessUser struct {
	ID         string `json:"id"`
	Encryption string `json:"encryption"`
	Flow       string `json:"flow"`
}

// --- trojan / shadowsocks ---

type TrojanSettings struct {
	Servers []TrojanServer `json:"servers"`
}

type TrojanServer struct {
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Password string `json:"password"`
}

type ShadowsocksSettings struct {
	Servers []ShadowsocksServer `json:"servers"`
}

type ShadowsocksServer struct {
	Method   string `json:"method"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
}
