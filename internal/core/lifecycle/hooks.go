package lifecycle

import (
	"container/list"
	"sync"
)

// hookList 按注册顺序保存结束钩子
//
// fire 之后不再接受新钩子；钩子在锁外执行，允许钩子内部再次访问作用域。
type hookList struct {
	mu    sync.Mutex
	hooks *list.List
	ended bool
	done  chan struct{}
}

func newHookList() *hookList {
	return &hookList{
		hooks: list.New(),
		done:  make(chan struct{}),
	}
}

// add 注册钩子
func (h *hookList) add(hook func()) (func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ended {
		return func() {}, false
	}

	elem := h.hooks.PushBack(hook)
	var once sync.Once
	unregister := func() {
		once.Do(func() {
			h.mu.Lock()
			if !h.ended {
				h.hooks.Remove(elem)
			}
			h.mu.Unlock()
		})
	}
	return unregister, true
}

// fire 结束并执行所有钩子，只有第一次调用返回 true
func (h *hookList) fire() bool {
	h.mu.Lock()
	if h.ended {
		h.mu.Unlock()
		return false
	}
	h.ended = true
	hooks := make([]func(), 0, h.hooks.Len())
	for e := h.hooks.Front(); e != nil; e = e.Next() {
		hooks = append(hooks, e.Value.(func()))
	}
	h.hooks.Init()
	close(h.done)
	h.mu.Unlock()

	for _, hook := range hooks {
		runHook(hook)
	}
	return true
}

// len 返回尚未执行的钩子数
func (h *hookList) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks.Len()
}

// isEnded 是否已结束
func (h *hookList) isEnded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ended
}

// runHook 执行单个钩子，隔离 panic
func runHook(hook func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("作用域结束钩子 panic", "panic", r)
		}
	}()
	hook()
}
