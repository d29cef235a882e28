package link

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnsupportedProtocol marks links whose scheme prefix is not one of the
// four supported protocols.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// DecodeError wraps any failure while decoding a single share link. Partial
// results are never surfaced: a DecodeError means no Config.
type DecodeError struct {
	Scheme Scheme
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s link: %v", e.Scheme, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Scheme enumerates the supported share-link protocols.
type Scheme string

const (
	SchemeVMess       Scheme = "vmess"
	SchemeVLESS       Scheme = "vless"
	SchemeTrojan      Scheme = "trojan"
	SchemeShadowsocks Scheme = "ss"
	SchemeUnsupported Scheme = ""
)

// SchemeOf classifies a raw link by exact, case-sensitive prefix match.
func SchemeOf(raw string) Scheme {
	for _, s := range []Scheme{SchemeVMess, SchemeVLESS, SchemeTrojan, SchemeShadowsocks} {
		if strings.HasPrefix(raw, string(s)+"://") {
			return s
		}
	}
	return SchemeUnsupported
}

// Decode turns one share link into a normalized Config. Dispatch is by scheme
// prefix; each decoder fails as a unit, so one malformed link never produces
// a half-built configuration.
func Decode(raw string) (*Config, error) {
	switch SchemeOf(raw) {
	case SchemeVMess:
		return decodeVMess(raw)
	case SchemeVLESS:
		return decodeVLESS(raw)
	case SchemeTrojan:
		return decodeTrojan(raw)
	case SchemeShadowsocks:
		return decodeShadowsocks(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, truncate(raw, 32))
	}
}

// decodeVMess handles the base64-wrapped JSON form. Field access is strict:
// a non-numeric port or alterId fails the whole link.
func decodeVMess(raw string) (*Config, error) {
	text, err := DecodeBase64(strings.TrimPrefix(raw, "vmess://"))
	if err != nil {
		return nil, &DecodeError{SchemeVMess, fmt.Errorf("base64 payload: %w", err)}
	}

	var obj map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, &DecodeError{SchemeVMess, fmt.Errorf("json payload: %w", err)}
	}
	params := ValuesFromJSON(obj)

	address := params.Str("add", "")
	port, err := strictInt(params, "port", 0)
	if err != nil {
		return nil, &DecodeError{SchemeVMess, err}
	}
	alterID, err := strictInt(params, "aid", 0)
	if err != nil {
		return nil, &DecodeError{SchemeVMess, err}
	}
	remarks := params.Str("ps", "")
	if remarks == "" {
		remarks = address
	}

	return &Config{
		Outbounds: []Outbound{{
			Protocol: "vmess",
			Settings: VmessSettings{Vnext: []VmessServer{{
				Address: address,
				Port:    port,
				Users: []VmessUser{{
					ID:       params.Str("id", ""),
					AlterID:  alterID,
					Security: params.Str("scy", "auto"),
					Level:    0,
				}},
			}}},
			StreamSettings: BuildStreamSettings(params, address),
			Tag:            "outbound_" + remarks,
		}},
		Remarks: remarks,
		Address: address,
		Port:    port,
	}, nil
}

func decodeVLESS(raw string) (*Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &DecodeError{SchemeVLESS, err}
	}
	address := u.Hostname()
	port := uriPort(u)
	params := ValuesFromQuery(u.Query())
	remarks := fragmentOr(u, address)

	return &Config{
		Outbounds: []Outbound{{
			Protocol: "vless",
			Settings: VlessSettings{Vnext: []VlessServer{{
				Address: address,
				Port:    port,
				Users: []VlessUser{{
					ID:         u.User.Username(),
					Encryption: params.Str("encryption", "none"),
					Flow:       params.Str("flow", ""),
				}},
			}}},
			StreamSettings: BuildStreamSettings(params, address),
			Tag:            "outbound_" + remarks,
		}},
		Remarks: remarks,
		Address: address,
		Port:    port,
	}, nil
}

func decodeTrojan(raw string) (*Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &DecodeError{SchemeTrojan, err}
	}
	address := u.Hostname()
	port := uriPort(u)
	params := ValuesFromQuery(u.Query())
	remarks := fragmentOr(u, address)

	return &Config{
		Outbounds: []Outbound{{
			Protocol: "trojan",
			Settings: TrojanSettings{Servers: []TrojanServer{{
				Address:  address,
				Port:     port,
				Password: u.User.Username(),
			}}},
			StreamSettings: BuildStreamSettings(params, address),
			Tag:            "outbound_" + remarks,
		}},
		Remarks: remarks,
		Address: address,
		Port:    port,
	}, nil
}

// decodeShadowsocks accepts both wire forms: the legacy URI
// ss://base64(method:password)@host:port#tag, and the whole-payload SIP002
// blob ss://base64(method:password@host:port)#tag.
func decodeShadowsocks(raw string) (*Config, error) {
	if u, err := url.Parse(raw); err == nil && u.User != nil && u.Port() != "" {
		return decodeShadowsocksURI(u)
	}
	return decodeShadowsocksBlob(raw)
}

func decodeShadowsocksURI(u *url.URL) (*Config, error) {
	userinfo, err := DecodeBase64(u.User.Username())
	if err != nil {
		return nil, &DecodeError{SchemeShadowsocks, fmt.Errorf("userinfo base64: %w", err)}
	}
	method, password, ok := strings.Cut(userinfo, ":")
	if !ok {
		return nil, &DecodeError{SchemeShadowsocks, errors.New("userinfo missing ':' separator")}
	}

	address := u.Hostname()
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return nil, &DecodeError{SchemeShadowsocks, fmt.Errorf("port: %w", err)}
	}

	return shadowsocksConfig(method, password, address, port, fragmentOr(u, address)), nil
}

func decodeShadowsocksBlob(raw string) (*Config, error) {
	payload, frag, hasFrag := strings.Cut(strings.TrimPrefix(raw, "ss://"), "#")

	text, err := DecodeBase64(payload)
	if err != nil {
		return nil, &DecodeError{SchemeShadowsocks, fmt.Errorf("payload base64: %w", err)}
	}
	method, rest, ok := strings.Cut(text, ":")
	if !ok {
		return nil, &DecodeError{SchemeShadowsocks, errors.New("payload missing ':' separator")}
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return nil, &DecodeError{SchemeShadowsocks, errors.New("payload missing '@' separator")}
	}
	password, server := rest[:at], rest[at+1:]

	address, portStr, ok := strings.Cut(server, ":")
	if !ok {
		return nil, &DecodeError{SchemeShadowsocks, errors.New("server part missing ':' separator")}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, &DecodeError{SchemeShadowsocks, fmt.Errorf("port: %w", err)}
	}

	remarks := address
	if hasFrag && frag != "" {
		remarks = frag
		if unescaped, err := url.PathUnescape(frag); err == nil {
			remarks = unescaped
		}
	}

	return shadowsocksConfig(method, password, address, port, remarks), nil
}

// shadowsocksConfig builds the shared result of both shadowsocks wire forms.
// No stream settings: the engine derives the transport itself.
func shadowsocksConfig(method, password, address string, port int, remarks string) *Config {
	return &Config{
		Outbounds: []Outbound{{
			Protocol: "shadowsocks",
			Settings: ShadowsocksSettings{Servers: []ShadowsocksServer{{
				Method:   method,
				Password: password,
				Address:  address,
				Port:     port,
			}}},
			Tag: "outbound_" + remarks,
		}},
		Remarks: remarks,
		Address: address,
		Port:    port,
	}
}

// strictInt reads key as an integer, failing on present-but-unparsable
// values. The builder's Values.Int is total; decoders are not.
func strictInt(params Values, key string, def int) (int, error) {
	val, ok := params.First(key)
	if !ok || val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

func uriPort(u *url.URL) int {
	port, _ := strconv.Atoi(u.Port())
	return port
}

func fragmentOr(u *url.URL, fallback string) string {
	if u.Fragment != "" {
		return u.Fragment
	}
	return fallback
}
