package loader

import (
	"github.com/ninja0404/token-wizard/pkg/config/reader"
	"github.com/ninja0404/token-wizard/pkg/config/source"
)

// Loader 管理多个配置源的加载与合并
type Loader interface {
	// Close 停止loader
	Close() error
	// Load 加载配置源
	Load(...source.Source) error
	// Snapshot 当前合并后的配置快照
	Snapshot() (*Snapshot, error)
	// Sync 强制重新读取所有配置源
	Sync() error
	// Watch 监听指定路径的配置变更
	Watch(...string) (Watcher, error)
	// String loader名称
	String() string
}

// Watcher 配置变更监听器
type Watcher interface {
	Next() (*Snapshot, error)
	Stop() error
}

// Snapshot 某一时刻的配置视图
type Snapshot struct {
	// 合并后的配置数据
	ChangeSet *source.ChangeSet
	// 单调递增的版本号
	Version string
}

// Copy 深拷贝快照
func Copy(s *Snapshot) *Snapshot {
	cs := *(s.ChangeSet)

	return &Snapshot{
		ChangeSet: &cs,
		Version:   s.Version,
	}
}

type Options struct {
	Reader reader.Reader
	Source []source.Source
}

type Option func(o *Options)
