// Package xlog 结构化日志门面：稳定、最小的日志 API，
// 与具体后端（Handler）解耦。
//
// # 核心功能
//
//   - [Logger]: 值类型日志句柄，七级严重度方法（Trace…Critical）
//   - [Handler]: 后端契约 + 可选能力集（隐私感知、Provider 槽位、带属性存量）
//   - [MultiplexHandler]: 一对多扇出组合器，级别取成员最小值
//   - [Bootstrap]: 进程级一次性工厂注册
//   - 延迟求值：[Logger.Logf] 门后格式化、[Logger.LogLazy] 完全延迟
//
// # 元数据合并
//
// 级别门通过后，元数据按优先级从低到高合并：
//
//	Provider 环境层 < Handler 存量层 < Logger 覆盖层 < 显式调用层
//
// 同名键由更高层覆盖（最右者胜）。
//
// # 值语义
//
// Logger 是廉价可复制的值：复制后修改副本的级别或元数据绝不影响原值。
// Handler 实例默认也是独立副本（工厂按 Logger 构造新实例）；
// 跨实例共享状态是后端作者的显式选择，且必须自带同步。
//
// # 失败语义
//
// 日志调用定义为不会失败：后端交付失败由后端自行吞掉或降级，
// 绝不 panic、绝不向调用方传播错误。
//
// # 隐私
//
// 带属性元数据（xmeta.AttributedMetadata）经 [Logger.LogAttributed] 进入。
// 隐私感知的后端（实现 [AttributedHandler]）原样接收隐私标记；
// 其余后端自动走脱敏降级，私有值替换为 xmeta.RedactedValue，内容绝不泄漏。
package xlog
