package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailFormatValid faz a validação barata, sem rede.
func IsEmailFormatValid(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsEmailDomainValid confere se o domínio resolve (MX ou A/AAAA).
// Usado apenas no cadastro de staff; o booking público não bloqueia
// em consulta de DNS.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
