package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

var (
	countryReader *geoip2.Reader
	once          sync.Once
	initErr       error
)

// Init loads the GeoLite2-Country mmdb. Lookups stay disabled when path is
// empty.
func Init(path string) error {
	once.Do(func() {
		if path == "" {
			return
		}
		countryReader, initErr = geoip2.Open(path)
		if initErr != nil {
			initErr = fmt.Errorf("failed to open country DB at %s: %w", path, initErr)
		}
	})
	return initErr
}

// Country returns the ISO country code for a literal IP address. Hostnames
// are not resolved.
func Country(addr string) (string, error) {
	if countryReader == nil {
		return "", fmt.Errorf("geoip database not initialized")
	}

	ip := net.ParseIP(addr)
	if ip == nil {
		return "", fmt.Errorf("not a literal ip: %s", addr)
	}

	record, err := countryReader.Country(ip)
	if err != nil {
		return "", err
	}
	return record.Country.IsoCode, nil
}

func Enabled() bool {
	return countryReader != nil
}

func Close() {
	if countryReader != nil {
		countryReader.Close()
	}
}
