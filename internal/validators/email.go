package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// DomainOf returns the domain part of a syntactically valid address.
func DomainOf(email string) (string, bool) {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return "", false
	}
	return addr.Address[at+1:], true
}

// IsEmailDomainValid reports whether the domain has a mail exchanger or, failing
// that, any address record.
func IsEmailDomainValid(email string) bool {
	domain, ok := DomainOf(email)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if hosts, err := net.DefaultResolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}

	return false
}
