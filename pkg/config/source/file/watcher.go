package file

import (
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/ninja0404/token-wizard/pkg/config/source"
)

type watcher struct {
	f  *file
	fw *fsnotify.Watcher
}

func newWatcher(f *file) (source.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(f.path); err != nil {
		return nil, err
	}

	return &watcher{
		f:  f,
		fw: fw,
	}, nil
}

func (w *watcher) Next() (*source.ChangeSet, error) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil, source.ErrWatcherStopped
			}

			// 编辑器保存时常见rename+create，重新挂载监听
			if event.Op&fsnotify.Rename == fsnotify.Rename {
				if _, err := os.Stat(event.Name); err == nil || os.IsExist(err) {
					w.fw.Add(event.Name)
				}
			}

			// 只关心内容变更类事件
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			c, err := w.f.Read()
			if err != nil {
				return nil, err
			}

			return c, nil
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil, source.ErrWatcherStopped
			}
			return nil, err
		}
	}
}

func (w *watcher) Stop() error {
	return w.fw.Close()
}
