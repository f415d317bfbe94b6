package loyalty

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ" // base-36 в верхнем регистре
	codeLength   = 8
)

type CodeGenerator interface {
	Generate(prefix string) (string, error)
}

// Случайные коды: префикс + 8 символов base-36
type RandomCodes struct{}

func (RandomCodes) Generate(prefix string) (string, error) {
	base := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, 0, len(prefix)+codeLength)
	code = append(code, prefix...)
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		code = append(code, codeAlphabet[n.Int64()])
	}
	return string(code), nil
}
