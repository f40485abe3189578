package event

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event 领域事件，由服务层在状态变更后发布
type Event interface {
	Name() string
}

// ActivityToggled 课时活动勾选/取消后发布
type ActivityToggled struct {
	UserID    uint      `json:"userId"`
	Phase     string    `json:"phase"`
	Day       int       `json:"day"`
	Hour      int       `json:"hour"`
	Activity  string    `json:"activity"`
	Completed bool      `json:"completed"` // 勾选后的状态
	At        time.Time `json:"at"`
}

func (ActivityToggled) Name() string { return "progress.activity_toggled" }

// ProgressUpdated 课时状态机发生迁移后发布
type ProgressUpdated struct {
	UserID uint      `json:"userId"`
	Phase  string    `json:"phase"`
	Day    int       `json:"day"`
	Hour   int       `json:"hour"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

func (ProgressUpdated) Name() string { return "progress.updated" }

// PlanUpdated 学习计划会话增删改后发布
type PlanUpdated struct {
	UserID uint      `json:"userId"`
	Date   string    `json:"date"`
	At     time.Time `json:"at"`
}

func (PlanUpdated) Name() string { return "plan.updated" }

type subscriber struct {
	name string
	ch   chan Event
}

// Bus 进程内事件总线，单 goroutine 分发，订阅方拥塞时丢弃而不阻塞发布方
type Bus struct {
	logger      *zap.Logger
	publish     chan Event
	subscribe   chan *subscriber
	unsubscribe chan *subscriber
	done        chan struct{}
	once        sync.Once
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		logger:      logger,
		publish:     make(chan Event, 64),
		subscribe:   make(chan *subscriber),
		unsubscribe: make(chan *subscriber),
		done:        make(chan struct{}),
	}
}

// Run 分发循环，应在独立 goroutine 中调用
func (b *Bus) Run() {
	subs := make(map[*subscriber]struct{})
	for {
		select {
		case s := <-b.subscribe:
			subs[s] = struct{}{}
		case s := <-b.unsubscribe:
			if _, ok := subs[s]; ok {
				delete(subs, s)
				close(s.ch)
			}
		case ev := <-b.publish:
			for s := range subs {
				select {
				case s.ch <- ev:
				default:
					b.logger.Warn("事件订阅者缓冲已满，丢弃事件",
						zap.String("subscriber", s.name),
						zap.String("event", ev.Name()))
				}
			}
		case <-b.done:
			for s := range subs {
				close(s.ch)
			}
			return
		}
	}
}

// Subscribe 返回事件通道和取消函数
func (b *Bus) Subscribe(name string) (<-chan Event, func()) {
	s := &subscriber{name: name, ch: make(chan Event, 16)}
	select {
	case b.subscribe <- s:
	case <-b.done:
		close(s.ch)
		return s.ch, func() {}
	}
	cancel := func() {
		select {
		case b.unsubscribe <- s:
		case <-b.done:
		}
	}
	return s.ch, cancel
}

// Publish 非阻塞发布，Bus 为 nil 时为空操作，便于测试
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	select {
	case b.publish <- ev:
	case <-b.done:
	default:
		b.logger.Warn("事件总线缓冲已满，丢弃事件", zap.String("event", ev.Name()))
	}
}

func (b *Bus) Stop() {
	b.once.Do(func() {
		close(b.done)
	})
}
