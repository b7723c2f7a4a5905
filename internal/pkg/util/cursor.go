package util

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type reviewCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        uint64    `json:"id"`
}

// EncodeReviewCursor 将分页定位点编码为不透明的 Base64 字符串
func EncodeReviewCursor(createdAt time.Time, id uint64) string {
	b, _ := json.Marshal(reviewCursor{CreatedAt: createdAt, ID: id})
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeReviewCursor 解码前端回传的游标，空游标代表首页
func DecodeReviewCursor(cursor string) (time.Time, uint64, error) {
	if cursor == "" {
		return time.Time{}, 0, nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, err
	}
	var c reviewCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return time.Time{}, 0, err
	}
	if c.ID == 0 {
		return time.Time{}, 0, errors.New("游标内容缺失")
	}
	return c.CreatedAt, c.ID, nil
}

// NormalizeTags 去重去空白，保留原始顺序
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res
}
