// internal/service/order/command/bus.go
package command

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var commandsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bazaar_commands_executed_total",
	Help: "Commands dequeued and executed by the command bus, by outcome.",
}, []string{"outcome"})

// CommandBus 按 FIFO 顺序执行待处理命令，并用 LIFO 历史栈支持撤销。
// 命令只有执行成功才会进入历史栈；失败的命令不会被自动重新入队，
// 是否重试由调用方决定。队列和历史栈由互斥锁保护，命令在持锁状态下
// 执行，因此命令体内不能回调总线自身。
type CommandBus struct {
	mu      sync.Mutex
	queue   []Command
	history []Command
}

func NewCommandBus() *CommandBus {
	return &CommandBus{}
}

// Enqueue 把命令追加到待处理队列尾部。
func (b *CommandBus) Enqueue(cmd Command) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, cmd)
}

// ExecuteNext 取出队首命令执行。
// 队列为空时返回失败结果而不是错误——这是一种良性的失败。
func (b *CommandBus) ExecuteNext() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return Result{Success: false, Message: "Empty queue"}
	}

	cmd := b.queue[0]
	b.queue = b.queue[1:]

	res := cmd.Execute()
	if res.Success {
		b.history = append(b.history, cmd)
		commandsExecuted.WithLabelValues("success").Inc()
	} else {
		commandsExecuted.WithLabelValues("failure").Inc()
		log.Warn().Str("message", res.Message).Msg("command execution failed")
	}
	return res
}

// UndoLast 撤销最近一次成功执行的命令；历史为空时是空操作。
func (b *CommandBus) UndoLast() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.history) == 0 {
		return
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	last.Undo()
}

// PendingLen 返回待处理命令数。
func (b *CommandBus) PendingLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// HistoryLen 返回可撤销的历史命令数。
func (b *CommandBus) HistoryLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.history)
}
