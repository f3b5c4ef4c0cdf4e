// Package xmeta 结构化日志的元数据值模型。
//
// # 核心类型
//
//   - [Value]: 封闭的递归变体类型（字符串、Stringer、列表、字典、延迟求值）
//   - [Metadata]: string → Value 映射，键唯一，逻辑上无序
//   - [AttributedValue]/[AttributedMetadata]: 带属性（隐私标记）的扩展形式
//
// # 确定性渲染
//
// [Value.String] 与 [Value.Equal] 均为结构化语义：字典渲染按键排序，
// 保证测试与日志解析工具看到稳定输出。
//
// # 延迟求值
//
// [Lazy] 与 [LazyString] 参数只保存函数引用，渲染时才执行。
// 日志级别未启用时昂贵计算完全不发生。
//
// # 隐私标记
//
// [PrivacyPrivate] 标记的值在进入不感知隐私的消费端前，
// 由 [AttributedMetadata.Redact] 统一替换为固定标记 [RedactedValue]。
// 键名保留，值内容绝不泄漏。
package xmeta
