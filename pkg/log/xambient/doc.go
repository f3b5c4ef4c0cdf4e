// Package xambient 环境 Logger 传播：把"当前 Logger"寄存在
// context.Context 里，深层嵌套调用无需逐参传递即可取回累积上下文。
//
// # 栈纪律
//
// context 的派生树天然满足严格的进出栈纪律：[With] 返回的子 context
// 只在其动态范围内可见，任何退出路径（正常返回、错误、panic 后恢复）
// 都自动"还原"到父 context 的环境 Logger，不存在泄漏到外层的可能。
//
// # 并发边界
//
// 独立派生的并发单元（go 出去却不传 ctx）不继承环境 Logger——
// 需要上下文就显式传 ctx 或捕获 Logger。这是刻意的安全边界，不是疏漏。
//
// # 无环境时的行为
//
// [From] 在任何环境 Logger 都不存在时退化为进程级 Bootstrap 工厂下的
// 合成标识 [FallbackLabel]，并打印一次性迁移提示，绝不 panic。
package xambient
