package config

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 文件安静多久后才上报
// 编辑器保存时通常会连续产生多个 Write 事件，只在最后一次之后上报一次
const reloadDebounce = 100 * time.Millisecond

// Watcher 监听配置目录，把发生变化的 .yaml/.tengo 文件路径发到 Events
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher 监听给定目录（不递归）
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close 停止监听并关闭 Events/Errors
// 可以重复调用
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := newDebouncer(reloadDebounce)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsWatchedFile(event.Name) {
				continue
			}
			pending.touch(event.Name, time.Now())
		case <-timer.C:
			for _, name := range pending.due(time.Now()) {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
			continue
		case <-w.closeCh:
			return
		}

		if d, ok := pending.wait(time.Now()); ok {
			timer.Reset(d)
		}
	}
}

// debouncer 记录每个文件最后一次变化后的上报时刻
// 每次变化都把该文件的上报时刻推迟 delay
type debouncer struct {
	delay    time.Duration
	deadline map[string]time.Time
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, deadline: make(map[string]time.Time)}
}

// touch 记录一次变化
func (d *debouncer) touch(name string, now time.Time) {
	d.deadline[name] = now.Add(d.delay)
}

// due 取出所有已经安静够久的文件（按名字排序）
func (d *debouncer) due(now time.Time) []string {
	var names []string
	for name, at := range d.deadline {
		if !now.Before(at) {
			names = append(names, name)
			delete(d.deadline, name)
		}
	}
	sort.Strings(names)
	return names
}

// wait 返回距离最近一次上报的时间；没有待上报文件时 ok 为 false
func (d *debouncer) wait(now time.Time) (time.Duration, bool) {
	var next time.Time
	for _, at := range d.deadline {
		if next.IsZero() || at.Before(next) {
			next = at
		}
	}
	if next.IsZero() {
		return 0, false
	}
	if wait := next.Sub(now); wait > 0 {
		return wait, true
	}
	return 0, true
}

// IsWatchedFile 是否为热重载关心的文件类型
func IsWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	default:
		return false
	}
}
