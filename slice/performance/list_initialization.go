package performance

import (
	"errors"
	"fmt"

	"perf-benchmarks/benchcase"
)

/*
对比初始化切片时是否指定容量。

结论：如果元素个数已知，建议 make([]int, 0, n) 预先指定容量，更快且分配更少。
原因：不指定容量时，append 每次先检查底层数组是否已满，满了就按约 2 倍（小切片）申请新数组，
把旧元素全部拷贝过去再追加新元素。10 个 int 从零开始增长会经历 1 -> 2 -> 4 -> 8 -> 16
共 5 次分配，指定容量后只有 1 次。
*/

const Count = 10

var ErrUnexpectedLength = errors.New("unexpected slice length")

// sliceSink 只给本包的 Benchmark 使用。注册出去的用例不写任何包级变量，
// runner.Verify 会并发执行不同用例。
var sliceSink []int

// InitWithCapacity 预分配容量后一次性追加 1..10。
func InitWithCapacity() []int {
	s := make([]int, 0, Count)
	s = append(s, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	return s
}

// InitWithoutCapacity 逐个追加 1..10，让切片按默认策略扩容。
func InitWithoutCapacity() []int {
	var s []int
	s = append(s, 1)
	s = append(s, 2)
	s = append(s, 3)
	s = append(s, 4)
	s = append(s, 5)
	s = append(s, 6)
	s = append(s, 7)
	s = append(s, 8)
	s = append(s, 9)
	s = append(s, 10)
	return s
}

func AddNumbersWithCapacity() []int {
	numbers := make([]int, 0, Count)
	for i := 0; i < Count; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

func AddNumbersWithoutCapacity() []int {
	var numbers []int
	for i := 0; i < Count; i++ {
		numbers = append(numbers, i)
	}
	return numbers
}

// AddNumbersIndexed 长度已知且无需过滤时，直接下标赋值可以省掉 append 的额外检查。
func AddNumbersIndexed() []int {
	numbers := make([]int, Count)
	for i := range numbers {
		numbers[i] = i
	}
	return numbers
}

// caseOp 只检查长度，结果留在调用内部；build 返回的切片本身已经逃逸到堆上，分配不会被优化掉。
func caseOp(build func() []int) benchcase.Op {
	return func() error {
		if n := len(build()); n != Count {
			return fmt.Errorf("%w: got %d elements, want %d", ErrUnexpectedLength, n, Count)
		}
		return nil
	}
}

// Register 注册 slice/ 用例。
func Register(r *benchcase.Registry) error {
	cases := []struct {
		name  string
		build func() []int
	}{
		{"slice/init-with-capacity", InitWithCapacity},
		{"slice/init-without-capacity", InitWithoutCapacity},
		{"slice/add-with-capacity", AddNumbersWithCapacity},
		{"slice/add-without-capacity", AddNumbersWithoutCapacity},
		{"slice/add-indexed", AddNumbersIndexed},
	}
	for _, c := range cases {
		if err := r.Register(c.name, caseOp(c.build)); err != nil {
			return err
		}
	}
	return nil
}
