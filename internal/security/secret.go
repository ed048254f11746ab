package security

import (
	"crypto/rand"
	"math/big"
)

const (
	generatedSecretLength = 48
	secretAlphabet        = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// GenerateSecret returns a random signing secret for a process that was started
// without SECRET_KEY. Tokens signed with it do not survive a restart.
func GenerateSecret() ([]byte, error) {
	return randomBytesFrom(secretAlphabet, generatedSecretLength)
}

func randomBytesFrom(alphabet string, length int) ([]byte, error) {
	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return nil, err
		}
		value[index] = alphabet[position.Int64()]
	}
	return value, nil
}
