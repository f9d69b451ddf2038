package config

import (
	"net"
	"net/url"
	"strconv"
)

// joinHostPort handles IPv6 hosts (adds brackets when needed).
func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// urlEscape keeps passwords such as "pa:ss@word" from breaking the DSN.
func urlEscape(s string) string {
	return url.QueryEscape(s)
}
