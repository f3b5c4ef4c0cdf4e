// Package xsink 门面自带的日志后端。
//
//   - [StreamHandler]: 按行写 io.Writer（text 或 json），不感知隐私，
//     私有值由门面脱敏后到达
//   - [NoopHandler]: 丢弃一切
//   - [CaptureHandler]: 测试捕获后端，记录完整 Record 供断言；
//     [AttributedCaptureHandler] 为其隐私感知变体，原样记录隐私标记
//
// 存储、轮转、网络投递等重后端不在本包范围：它们通过 xlog.Factory
// 接缝以外部协作者的形式接入。
//
// # 并发
//
// 后端在多个 Logger 副本间共享可变状态时必须自带同步，这是后端作者的
// 文档化义务。本包所有后端内部持锁，可安全地被并发调用。
package xsink
