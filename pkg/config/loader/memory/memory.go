package memory

import (
	"bytes"
	"container/list"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ninja0404/token-wizard/pkg/config/loader"
	"github.com/ninja0404/token-wizard/pkg/config/reader"
	"github.com/ninja0404/token-wizard/pkg/config/reader/json"
	"github.com/ninja0404/token-wizard/pkg/config/source"
)

type memory struct {
	exit chan bool
	opts loader.Options

	sync.RWMutex
	// 当前快照
	snap *loader.Snapshot
	// 当前解析后的配置树
	vals reader.Values
	// 每个source最近一次读取的数据
	sets []*source.ChangeSet
	// 全部source
	sources []source.Source

	watchers *list.List
}

type updateValue struct {
	version string
	value   reader.Value
}

type watcher struct {
	exit    chan bool
	path    []string
	value   reader.Value
	reader  reader.Reader
	version string
	updates chan updateValue
}

// watch 持续监听单个source的变更并触发合并
func (m *memory) watch(idx int, s source.Source) {
	watchLoop := func(w source.Watcher) error {
		for {
			cs, err := w.Next()
			if err != nil {
				return err
			}

			m.Lock()

			m.sets[idx] = cs

			set, err := m.opts.Reader.Merge(m.sets...)
			if err != nil {
				m.Unlock()
				return err
			}

			m.vals, _ = m.opts.Reader.Values(set)
			m.snap = &loader.Snapshot{
				ChangeSet: set,
				Version:   genVer(),
			}
			m.Unlock()

			m.update()
		}
	}

	for {
		w, err := s.Watch()
		if err != nil {
			time.Sleep(time.Second)
			continue
		}

		// loader退出时关闭底层watcher
		done := make(chan bool)
		go func() {
			select {
			case <-done:
			case <-m.exit:
			}
			w.Stop()
		}()

		if err := watchLoop(w); err != nil {
			time.Sleep(time.Second)
		}

		close(done)

		select {
		case <-m.exit:
			return
		default:
		}
	}
}

// update 将最新快照推送给所有watcher
func (m *memory) update() {
	watchers := make([]*watcher, 0, m.watchers.Len())

	m.RLock()
	for e := m.watchers.Front(); e != nil; e = e.Next() {
		watchers = append(watchers, e.Value.(*watcher))
	}
	vals := m.vals
	snap := m.snap
	m.RUnlock()

	for _, w := range watchers {
		if w.version >= snap.Version {
			continue
		}

		uv := updateValue{
			version: snap.Version,
			value:   vals.Get(w.path...),
		}

		select {
		case w.updates <- uv:
		default:
		}
	}
}

func (m *memory) Snapshot() (*loader.Snapshot, error) {
	m.RLock()
	defer m.RUnlock()
	if m.snap == nil {
		return nil, errors.New("no snapshot loaded")
	}
	return loader.Copy(m.snap), nil
}

func (m *memory) Sync() error {
	var sets []*source.ChangeSet
	var gerr []string

	m.Lock()

	for _, s := range m.sources {
		ch, err := s.Read()
		if err != nil {
			gerr = append(gerr, err.Error())
			continue
		}
		sets = append(sets, ch)
	}

	set, err := m.opts.Reader.Merge(sets...)
	if err != nil {
		m.Unlock()
		return err
	}

	vals, err := m.opts.Reader.Values(set)
	if err != nil {
		m.Unlock()
		return err
	}
	m.vals = vals
	m.snap = &loader.Snapshot{
		ChangeSet: set,
		Version:   genVer(),
	}
	m.Unlock()

	m.update()

	if len(gerr) > 0 {
		return fmt.Errorf("source loading errors: %s", strings.Join(gerr, "\n"))
	}

	return nil
}

func (m *memory) Close() error {
	select {
	case <-m.exit:
	default:
		close(m.exit)
	}
	return nil
}

func (m *memory) Load(sources ...source.Source) error {
	var gerrors []string

	for _, s := range sources {
		set, err := s.Read()
		if err != nil {
			gerrors = append(gerrors,
				fmt.Sprintf("error loading source %s: %v", s, err))
			// 继续加载其余source
			continue
		}

		m.Lock()
		m.sources = append(m.sources, s)
		m.sets = append(m.sets, set)
		idx := len(m.sets) - 1
		m.Unlock()

		go m.watch(idx, s)
	}

	if err := m.reload(); err != nil {
		gerrors = append(gerrors, err.Error())
	}

	if len(gerrors) != 0 {
		return errors.New(strings.Join(gerrors, "\n"))
	}

	return nil
}

func (m *memory) reload() error {
	m.Lock()

	set, err := m.opts.Reader.Merge(m.sets...)
	if err != nil {
		m.Unlock()
		return err
	}

	m.vals, _ = m.opts.Reader.Values(set)
	m.snap = &loader.Snapshot{
		ChangeSet: set,
		Version:   genVer(),
	}

	m.Unlock()

	m.update()

	return nil
}

func (m *memory) Watch(path ...string) (loader.Watcher, error) {
	m.Lock()

	if m.vals == nil || m.snap == nil {
		m.Unlock()
		return nil, errors.New("no config loaded")
	}

	w := &watcher{
		exit:    make(chan bool),
		path:    path,
		value:   m.vals.Get(path...),
		reader:  m.opts.Reader,
		updates: make(chan updateValue, 1),
		version: m.snap.Version,
	}

	e := m.watchers.PushBack(w)
	m.Unlock()

	// watcher停止时摘除
	go func() {
		<-w.exit
		m.Lock()
		m.watchers.Remove(e)
		m.Unlock()
	}()

	return w, nil
}

func (m *memory) String() string {
	return "memory"
}

func (w *watcher) Next() (*loader.Snapshot, error) {
	update := func(v reader.Value) *loader.Snapshot {
		w.value = v
		cs := &source.ChangeSet{
			Data:      v.Bytes(),
			Format:    w.reader.String(),
			Source:    "memory",
			Timestamp: time.Now(),
		}
		cs.Checksum = cs.Sum()

		return &loader.Snapshot{
			ChangeSet: cs,
			Version:   w.version,
		}
	}

	for {
		select {
		case <-w.exit:
			return nil, errors.New("watcher stopped")

		case uv := <-w.updates:
			if uv.version <= w.version {
				continue
			}

			v := uv.value
			w.version = uv.version

			if bytes.Equal(w.value.Bytes(), v.Bytes()) {
				continue
			}

			return update(v), nil
		}
	}
}

func (w *watcher) Stop() error {
	select {
	case <-w.exit:
	default:
		close(w.exit)
	}

	return nil
}

func genVer() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func NewLoader(opts ...loader.Option) loader.Loader {
	options := loader.Options{
		Reader: json.NewReader(),
	}

	for _, o := range opts {
		o(&options)
	}

	m := &memory{
		exit:     make(chan bool),
		opts:     options,
		watchers: list.New(),
		sources:  options.Source,
	}

	m.sets = make([]*source.ChangeSet, len(options.Source))

	for i, s := range options.Source {
		m.sets[i] = &source.ChangeSet{Source: s.String()}
		go m.watch(i, s)
	}

	return m
}
