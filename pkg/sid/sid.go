package sid

import (
	"fmt"

	"github.com/sony/sonyflake"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

type Sid struct {
	sf *sonyflake.Sonyflake
}

func NewSid() *Sid {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{})
	if sf == nil {
		panic("sonyflake not created")
	}
	return &Sid{sf}
}

// GenString 生成全局唯一的短字符串 ID（sonyflake + base62）
func (s Sid) GenString() (string, error) {
	id, err := s.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("failed to generate sonyflake id: %w", err)
	}
	return intToBase62(id), nil
}

func (s Sid) GenUint64() (uint64, error) {
	return s.sf.NextID()
}

func intToBase62(n uint64) string {
	if n == 0 {
		return string(base62Chars[0])
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{base62Chars[n%62]}, buf...)
		n /= 62
	}
	return string(buf)
}
