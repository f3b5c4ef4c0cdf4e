// bootstrap.go 进程级一次性注册：label → Handler 的默认工厂。
//
// 生命周期约定：启动早期配置一次，此后只读。重复 Bootstrap 会被忽略
// 并打印一次性诊断（绝不 panic，也绝不波及无关调用方）。
// 已构造的 Logger 持有捕获时的 Handler 实例，重新 Bootstrap 对其无追溯效果。
package xlog

import (
	"fmt"
	"os"
	"sync"
)

var (
	// bootstrapMu 保护工厂槽位的并发读写
	bootstrapMu sync.Mutex

	// bootstrapFactory 当前工厂；nil 表示未 Bootstrap，使用内置 stderr 后备
	bootstrapFactory Factory

	// bootstrapDone 是否已 Bootstrap 过
	bootstrapDone bool

	// rebootstrapWarned 重复 Bootstrap 的一次性诊断是否已打印
	rebootstrapWarned bool
)

// Bootstrap 注册进程级默认 Handler 工厂
//
// 有效一次：首次调用生效，之后的调用被忽略并向 stderr 打印一次性诊断。
// 应在进程启动早期、构造任何 Logger 之前调用。
// nil 工厂视为无操作。
func Bootstrap(f Factory) {
	if f == nil {
		return
	}
	bootstrapMu.Lock()
	defer bootstrapMu.Unlock()
	if bootstrapDone {
		if !rebootstrapWarned {
			rebootstrapWarned = true
			fmt.Fprintln(os.Stderr, "xlog: Bootstrap called more than once, ignoring")
		}
		return
	}
	bootstrapFactory = f
	bootstrapDone = true
}

// ResetBootstrap 重置工厂为未注册状态（仅用于测试）
//
// 测试隔离用的钩子，不应出现在业务代码路径里。
func ResetBootstrap() {
	bootstrapMu.Lock()
	bootstrapFactory = nil
	bootstrapDone = false
	rebootstrapWarned = false
	bootstrapMu.Unlock()
}

// New 用当前工厂构造 Logger
//
// 未 Bootstrap 时使用内置后备工厂（stderr 文本输出，info 级别）。
// Logger 捕获构造时的 Handler 实例，之后的 Bootstrap 不影响它。
func New(label string) Logger {
	bootstrapMu.Lock()
	f := bootstrapFactory
	bootstrapMu.Unlock()
	if f == nil {
		f = newFallbackHandler
	}
	return Logger{label: label, handler: f(label)}
}
