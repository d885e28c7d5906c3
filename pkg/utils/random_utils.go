package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// RandomEmployeeCode 生成一个带前缀的随机员工工号，如 EMP-83921045
func RandomEmployeeCode(prefix string) string {
	n := RandomInt32()
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%s-%08d", prefix, n%100000000)
}
