package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

// QRPayload 表示二维码中嵌入的访问载荷
// 载荷为明文JSON，不做签名。信任边界是数据库中是否存在完全相同的载荷字符串
type QRPayload struct {
	ID           string `json:"id"`
	UserID       uint   `json:"user_id"`
	Apartment    string `json:"apartment"`
	ResidentName string `json:"resident_name"`
	Timestamp    int64  `json:"timestamp"`
}

// generateID 生成载荷标识: 毫秒时间戳加9位随机base36后缀
// 唯一性是概率性的，不做碰撞检测
func generateID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), RandomBase36String(9))
}

// GenerateQRData 构造一条新的二维码载荷
func GenerateQRData(userID uint, apartment, residentName string) string {
	payload := QRPayload{
		ID:           generateID(),
		UserID:       userID,
		Apartment:    apartment,
		ResidentName: residentName,
		Timestamp:    time.Now().UnixMilli(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// 载荷只包含基础类型，序列化不会失败
		panic(err)
	}
	return string(data)
}

// ParseQRData 解析二维码载荷，任何解析失败都返回nil，不会panic
func ParseQRData(data string) *QRPayload {
	var payload QRPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil
	}
	return &payload
}
