// Package circuitbreaker 熔断器
//
// 状态转换：
//
//	CLOSED --ReadyToTrip--> OPEN --Timeout--> HALF_OPEN --成功--> CLOSED
//	                         ^                    |
//	                         +-------失败---------+
//
// 用于保护Redis等外部依赖：依赖故障时快速失败，不让每个请求都等待超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行，统计失败
	StateOpen                  // 快速失败，Timeout后转为半开
	StateHalfOpen              // 放行少量探测请求
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开（或半开状态探测请求已满）
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置，零值字段使用默认值
type Config struct {
	// MaxRequests 半开状态允许的探测请求数，默认1
	MaxRequests uint32

	// Interval 关闭状态的统计窗口，过期后清零计数；0表示不清零
	Interval time.Duration

	// Timeout 打开状态持续时间，默认30s
	Timeout time.Duration

	// ReadyToTrip 是否应该熔断，默认连续失败5次
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断请求结果是否算成功，默认err==nil
	// 例如调用方主动取消（context.Canceled）不应该算作依赖故障
	IsSuccessful func(err error) bool

	// OnStateChange 状态变化回调（日志、告警）
	OnStateChange func(name string, from, to State)
}

// Counts 当前窗口的统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// CircuitBreaker 熔断器，并发安全
type CircuitBreaker struct {
	name   string
	config Config
	now    func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃旧状态下发出的请求结果
	counts     Counts
	expiry     time.Time
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	if config.MaxRequests == 0 {
		config.MaxRequests = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ReadyToTrip == nil {
		config.ReadyToTrip = func(counts Counts) bool { return counts.ConsecutiveFailures >= 5 }
	}
	if config.IsSuccessful == nil {
		config.IsSuccessful = func(err error) bool { return err == nil }
	}

	cb := &CircuitBreaker{name: name, config: config, now: time.Now}
	cb.resetWindow(cb.now())
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute 在熔断器保护下执行请求
// 熔断时不调用req，直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, cb.config.IsSuccessful(err))
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前统计数据
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.config.MaxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.TotalSuccesses++
		cb.counts.ConsecutiveSuccesses++
		cb.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.TotalFailures++
	cb.counts.ConsecutiveFailures++
	cb.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if cb.config.ReadyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState 处理过期：关闭状态窗口过期清零，打开状态超时转半开
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.resetWindow(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++

	switch state {
	case StateClosed:
		cb.resetWindow(now)
	case StateOpen:
		cb.counts = Counts{}
		cb.expiry = now.Add(cb.config.Timeout)
	case StateHalfOpen:
		cb.counts = Counts{}
		cb.expiry = time.Time{}
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.name, prev, state)
	}
}

func (cb *CircuitBreaker) resetWindow(now time.Time) {
	cb.counts = Counts{}
	if cb.config.Interval > 0 {
		cb.expiry = now.Add(cb.config.Interval)
	} else {
		cb.expiry = time.Time{}
	}
}
