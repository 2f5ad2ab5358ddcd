package rules

import "strings"

const cpfLength = 11

// NormalizeCPF drops everything but ASCII digits, so "529.982.247-25" becomes
// "52998224725".
func NormalizeCPF(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
}

// ValidateCPF reports whether input is a well-formed CPF: eleven digits, not
// all equal, with both check digits matching the mod-11 rule.
func ValidateCPF(input string) bool {
	cpf := NormalizeCPF(input)
	if len(cpf) != cpfLength {
		return false
	}

	if strings.Count(cpf, cpf[:1]) == cpfLength {
		return false
	}

	for i := 9; i < cpfLength; i++ {
		if int(cpf[i]-'0') != checkDigit(cpf[:i]) {
			return false
		}
	}
	return true
}

// checkDigit weighs digits from len+1 down to 2.
func checkDigit(digits string) int {
	sum := 0
	weight := len(digits) + 1
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	return (sum * 10 % 11) % 10
}
