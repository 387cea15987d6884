package utils

import (
	"crypto/rand"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36String 生成一个n位的安全随机base36字符串
func RandomBase36String(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("generate random bytes failed")
	}

	for i, b := range buf {
		buf[i] = base36Chars[int(b)%len(base36Chars)]
	}
	return string(buf)
}
