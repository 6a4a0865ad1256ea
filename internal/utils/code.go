package utils

import (
	"fmt"
	"math/rand/v2"
)

// RandomCode returns a random 4-digit verification code.
func RandomCode() string {
	return fmt.Sprintf("%04d", 1000+rand.IntN(9000))
}
