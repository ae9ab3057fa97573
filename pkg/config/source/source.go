package source

import "errors"

// ErrWatcherStopped 监听器已停止
var ErrWatcherStopped = errors.New("watcher stopped")

// Source 配置数据源接口
type Source interface {
	Read() (*ChangeSet, error)
	Write(*ChangeSet) error
	Watch() (Watcher, error)
	String() string
}

// Watcher 监听数据源变更
type Watcher interface {
	Next() (*ChangeSet, error)
	Stop() error
}
