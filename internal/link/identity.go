package link

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Fingerprint derives a stable identifier for a decoded configuration so the
// history store can recognize the same server across runs and across the two
// shadowsocks wire forms.
func (c *Config) Fingerprint() string {
	out := c.Outbounds[0]

	parts := []string{
		strings.ToLower(out.Protocol),
		strings.ToLower(c.Address),
		strconv.Itoa(c.Port),
	}

	switch s := out.Settings.(type) {
	case VmessSettings:
		u := s.Vnext[0].Users[0]
		parts = append(parts, u.ID, strconv.Itoa(u.AlterID), strings.ToLower(u.Security))
	case VlessSettings:
		u := s.Vnext[0].Users[0]
		// Explicit "none" and absent encryption mean the same thing.
		enc := strings.ToLower(u.Encryption)
		if enc == "none" {
			enc = ""
		}
		parts = append(parts, u.ID, enc, u.Flow)
	case TrojanSettings:
		parts = append(parts, s.Servers[0].Password)
	case ShadowsocksSettings:
		srv := s.Servers[0]
		parts = append(parts, strings.ToLower(srv.Method), srv.Password)
	}

	if ss := out.StreamSettings; ss != nil {
		net := strings.ToLower(string(ss.Network))
		if net == "" {
			net = "tcp"
		}
		parts = append(parts, net, strings.ToLower(string(ss.Security)))

		switch {
		case ss.WSSettings != nil:
			parts = append(parts, ss.WSSettings.Path, ss.WSSettings.Host)
		case ss.GRPCSettings != nil:
			parts = append(parts, ss.GRPCSettings.ServiceName)
		case ss.KCPSettings != nil && ss.KCPSettings.Seed != nil:
			parts = append(parts, *ss.KCPSettings.Seed)
		}
		if ss.RealitySettings != nil {
			parts = append(parts, ss.RealitySettings.PublicKey, ss.RealitySettings.ShortID)
		}
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
