package source

import (
	"crypto/md5"
	"fmt"
	"time"
)

// ChangeSet 一份配置数据及其元信息
type ChangeSet struct {
	Data      []byte
	Checksum  string
	Format    string
	Source    string
	Timestamp time.Time
}

// Sum 返回配置数据的md5校验和
func (c *ChangeSet) Sum() string {
	h := md5.New()
	h.Write(c.Data)
	return fmt.Sprintf("%x", h.Sum(nil))
}
