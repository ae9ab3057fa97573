package config

import (
	"sync"
	"time"

	"github.com/ninja0404/token-wizard/pkg/config/loader"
	"github.com/ninja0404/token-wizard/pkg/config/loader/memory"
	"github.com/ninja0404/token-wizard/pkg/config/reader"
	"github.com/ninja0404/token-wizard/pkg/config/reader/json"
	"github.com/ninja0404/token-wizard/pkg/config/source"
)

// Config 配置管理入口，组合loader与reader
type Config interface {
	// Values 查询能力
	reader.Values
	// Load 加载配置源
	Load(source ...source.Source) error
	// Sync 强制重新读取所有配置源
	Sync() error
	// Close 停止配置系统
	Close() error
}

type config struct {
	exit chan bool
	opts Options

	sync.RWMutex
	// 当前快照
	snap *loader.Snapshot
	// 当前配置树
	vals reader.Values
}

// DefaultConfig 默认配置实例，包级函数均作用于它
var DefaultConfig = NewConfig()

func NewConfig(opts ...Option) Config {
	options := Options{
		Reader: json.NewReader(),
	}

	for _, o := range opts {
		o(&options)
	}

	if options.Loader == nil {
		options.Loader = memory.NewLoader(memory.WithReader(options.Reader))
	}

	c := &config{
		exit: make(chan bool),
		opts: options,
	}

	go c.run()

	return c
}

// run 跟随loader的配置变更刷新本地视图
func (c *config) run() {
	watch := func(w loader.Watcher) error {
		for {
			snap, err := w.Next()
			if err != nil {
				return err
			}

			c.Lock()
			c.snap = snap
			c.vals, _ = c.opts.Reader.Values(snap.ChangeSet)
			c.Unlock()
		}
	}

	for {
		w, err := c.opts.Loader.Watch()
		if err != nil {
			// 尚未加载任何source
			select {
			case <-c.exit:
				return
			case <-time.After(time.Second):
			}
			continue
		}

		done := make(chan bool)
		go func() {
			select {
			case <-done:
			case <-c.exit:
			}
			w.Stop()
		}()

		watch(w)
		close(done)

		select {
		case <-c.exit:
			return
		default:
		}
	}
}

func (c *config) Load(sources ...source.Source) error {
	if err := c.opts.Loader.Load(sources...); err != nil {
		return err
	}

	snap, err := c.opts.Loader.Snapshot()
	if err != nil {
		return err
	}

	vals, err := c.opts.Reader.Values(snap.ChangeSet)
	if err != nil {
		return err
	}

	c.Lock()
	c.snap = snap
	c.vals = vals
	c.Unlock()

	return nil
}

func (c *config) Sync() error {
	if err := c.opts.Loader.Sync(); err != nil {
		return err
	}

	snap, err := c.opts.Loader.Snapshot()
	if err != nil {
		return err
	}

	vals, err := c.opts.Reader.Values(snap.ChangeSet)
	if err != nil {
		return err
	}

	c.Lock()
	c.snap = snap
	c.vals = vals
	c.Unlock()

	return nil
}

func (c *config) Close() error {
	select {
	case <-c.exit:
	default:
		close(c.exit)
		c.opts.Loader.Close()
	}
	return nil
}

func (c *config) Get(path ...string) reader.Value {
	c.RLock()
	defer c.RUnlock()

	if c.vals != nil {
		return c.vals.Get(path...)
	}

	return newValue()
}

func (c *config) Set(val interface{}, path ...string) {
	c.Lock()
	defer c.Unlock()

	if c.vals != nil {
		c.vals.Set(val, path...)
	}
}

func (c *config) Del(path ...string) {
	c.Lock()
	defer c.Unlock()

	if c.vals != nil {
		c.vals.Del(path...)
	}
}

func (c *config) Bytes() []byte {
	c.RLock()
	defer c.RUnlock()

	if c.vals == nil {
		return []byte{}
	}

	return c.vals.Bytes()
}

func (c *config) Map() map[string]interface{} {
	c.RLock()
	defer c.RUnlock()

	if c.vals == nil {
		return map[string]interface{}{}
	}

	return c.vals.Map()
}

func (c *config) Scan(v interface{}) error {
	c.RLock()
	defer c.RUnlock()

	if c.vals == nil {
		return nil
	}

	return c.vals.Scan(v)
}

// Load 加载配置源到默认实例
func Load(sources ...source.Source) error {
	return DefaultConfig.Load(sources...)
}

// Get 从默认实例按路径取值
func Get(path ...string) reader.Value {
	return DefaultConfig.Get(path...)
}

// Scan 将默认实例的配置整体解析到v
func Scan(v interface{}) error {
	return DefaultConfig.Scan(v)
}

// Bytes 默认实例的原始配置数据
func Bytes() []byte {
	return DefaultConfig.Bytes()
}

// Sync 强制刷新默认实例
func Sync() error {
	return DefaultConfig.Sync()
}

// Close 关闭默认实例
func Close() error {
	return DefaultConfig.Close()
}
