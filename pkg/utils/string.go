package utils

import (
	"math/rand"
	"strings"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ123456789")

func GenerateRandomStringWithLength(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// NormalizeTitle lowercases and trims a prize or restaurant title so that
// request-map keys and catalog entries compare the same way.
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
