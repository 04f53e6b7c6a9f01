// Package cpf valida y formatea el CPF brasileño (Cadastro de Pessoas Físicas).
package cpf

import (
	"fmt"
	"unicode"
)

// Validate valida un CPF (con o sin puntos/guion) según el algoritmo módulo 11
// de la Receita Federal. cpf puede ser "529.982.247-25" o "52998224725".
func Validate(cpf string) error {
	digits := extractDigits(cpf)
	if len(digits) != 11 {
		return fmt.Errorf("cpf: debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	if allEqual(digits) {
		// 000.000.000-00, 111.111.111-11, etc. pasan el módulo 11 pero no son CPFs válidos
		return fmt.Errorf("cpf: secuencia de dígitos repetidos no es válida")
	}
	if digits[9] != checkDigit(digits[:9]) {
		return fmt.Errorf("cpf: primer dígito de verificación inválido")
	}
	if digits[10] != checkDigit(digits[:10]) {
		return fmt.Errorf("cpf: segundo dígito de verificación inválido")
	}
	return nil
}

// Format devuelve el CPF en su forma canónica 000.000.000-00.
// Retorna error si el CPF no es válido.
func Format(cpf string) (string, error) {
	if err := Validate(cpf); err != nil {
		return "", err
	}
	d := extractDigits(cpf)
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11]), nil
}

// checkDigit calcula un dígito de verificación sobre los dígitos base.
// Pesos descendentes desde len(base)+1 hasta 2; resto < 2 produce dígito 0.
func checkDigit(base []byte) byte {
	weight := len(base) + 1
	var sum int
	for _, d := range base {
		sum += int(d-'0') * weight
		weight--
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
