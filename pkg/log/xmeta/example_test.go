package xmeta_test

import (
	"fmt"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

func ExampleDict() {
	v := xmeta.Dict(xmeta.Metadata{
		"user":   xmeta.String("u-1"),
		"labels": xmeta.List(xmeta.String("beta"), xmeta.String("eu")),
	})
	// 字典渲染按键排序，输出确定
	fmt.Println(v)
	// Output: {labels: [beta, eu], user: u-1}
}

func ExampleAttributedMetadata_Redact() {
	am := xmeta.AttributedMetadata{
		"action": xmeta.Public(xmeta.String("login")),
		"token":  xmeta.Private(xmeta.String("s3cret")),
	}
	md := am.Redact()
	fmt.Println(md["action"], md["token"])
	// Output: login <private>
}

func ExampleLazyString() {
	v := xmeta.LazyString(func() string {
		// 只有真正渲染时才执行
		return "computed"
	})
	fmt.Println(v)
	// Output: computed
}
