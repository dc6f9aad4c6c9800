package validators

import "strings"

// NormalizePhone remove tudo que não é dígito. O valor armazenado
// preserva a formatação original; o normalizado serve só para validar.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid exige pelo menos 10 dígitos (DDD + número).
func IsPhoneValid(phone string) bool {
	return len(NormalizePhone(phone)) >= 10
}
