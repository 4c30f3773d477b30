package performance

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"perf-benchmarks/benchcase"
)

/*
对比初始化 strings.Builder 时是否预分配容量。

结论：如果最终长度可预知，用 Grow 预分配更快，分配也更少。
原因：不预分配时 Builder 的底层 []byte 从零开始按 append 策略扩容，每次扩容都要申请新数组并拷贝
已写入的内容。注意 Grow 的参数是字节数而不是元素个数：Grow(len(Parts)) 只预留了 100 字节，
写入第二个元素时就要扩容，效果远不如按总字节数 Grow。

strings.Builder 的 String() 直接复用底层 []byte，不会再拷贝一次；bytes.Buffer 和 []byte
最后都要 string(buf) 转换，多一次分配。
*/

const part = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

// Parts 是 100 个相同的 62 字节字符串。
var Parts = func() []string {
	parts := make([]string, 100)
	for i := range parts {
		parts[i] = part
	}
	return parts
}()

// strSink 只给本包的 Benchmark 使用，注册出去的用例不写包级变量。
var strSink string

var ErrUnexpectedLength = errors.New("unexpected concat length")

func totalLen(parts []string) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}

func BuilderWithoutCapacity(parts []string) string {
	var builder strings.Builder
	for _, p := range parts {
		builder.WriteString(p)
	}
	return builder.String()
}

// BuilderWithCapacity 按元素个数预分配。
func BuilderWithCapacity(parts []string) string {
	var builder strings.Builder
	builder.Grow(len(parts))
	for _, p := range parts {
		builder.WriteString(p)
	}
	return builder.String()
}

// BuilderWithExactSize 按最终字节数预分配，只有一次分配。
func BuilderWithExactSize(parts []string) string {
	var builder strings.Builder
	builder.Grow(totalLen(parts))
	for _, p := range parts {
		builder.WriteString(p)
	}
	return builder.String()
}

func BufferConcat(parts []string) string {
	buf := new(bytes.Buffer)
	for _, p := range parts {
		buf.WriteString(p)
	}
	return buf.String()
}

func PreByteConcat(parts []string) string {
	buf := make([]byte, 0, totalLen(parts))
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return string(buf)
}

// PlusConcat 每次 + 都会生成新字符串，作为反面对照。
func PlusConcat(parts []string) string {
	s := ""
	for _, p := range parts {
		s += p
	}
	return s
}

func JoinConcat(parts []string) string {
	return strings.Join(parts, "")
}

// Register 注册 string/ 用例，前三个是 Builder 容量对比，其余是其他拼接方式的对照。
func Register(r *benchcase.Registry) error {
	cases := []struct {
		name   string
		concat func([]string) string
	}{
		{"string/builder-with-capacity", BuilderWithCapacity},
		{"string/builder-with-exact-size", BuilderWithExactSize},
		{"string/builder-without-capacity", BuilderWithoutCapacity},
		{"string/buffer", BufferConcat},
		{"string/pre-byte", PreByteConcat},
		{"string/plus", PlusConcat},
		{"string/join", JoinConcat},
	}
	want := totalLen(Parts)
	for _, c := range cases {
		if err := r.Register(c.name, func() error {
			if n := len(c.concat(Parts)); n != want {
				return fmt.Errorf("%w: got %d bytes, want %d", ErrUnexpectedLength, n, want)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
