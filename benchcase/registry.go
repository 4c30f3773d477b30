// Package benchcase 维护基准测试用例的注册表。
//
// 每个用例是一个有名字、无参数的操作，由各个 performance 包在启动时显式注册，
// 再交给 runner 或 go test 去反复执行、统计耗时与内存分配。
package benchcase

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
)

var (
	ErrDuplicateCase = errors.New("benchcase: duplicate case name")
	ErrEmptyName     = errors.New("benchcase: empty case name")
	ErrNilOp         = errors.New("benchcase: nil operation")
)

// Op 是被测量的一次操作，底层库返回的错误原样返回。
type Op func() error

// Case 注册后不再修改。
type Case struct {
	Name string
	Op   Op
}

// Group 返回名字中第一个 "/" 之前的部分，例如 hash/md5 -> hash。
func (c Case) Group() string {
	group, _, found := strings.Cut(c.Name, "/")
	if !found {
		return ""
	}
	return group
}

// Registry 按注册顺序保存用例，只在启动阶段注册，不做并发保护。
type Registry struct {
	cases []Case
	index map[string]int
}

func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register 追加一个用例，名字重复时返回 ErrDuplicateCase，已有用例保持不变。
func (r *Registry) Register(name string, op Op) error {
	if name == "" {
		return ErrEmptyName
	}
	if op == nil {
		return fmt.Errorf("%w: %s", ErrNilOp, name)
	}
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCase, name)
	}
	r.index[name] = len(r.cases)
	r.cases = append(r.cases, Case{Name: name, Op: op})
	return nil
}

func (r *Registry) MustRegister(name string, op Op) {
	if err := r.Register(name, op); err != nil {
		panic(err)
	}
}

// List 返回注册顺序的快照，修改返回值不影响注册表。
func (r *Registry) List() []Case {
	out := make([]Case, len(r.cases))
	copy(out, r.cases)
	return out
}

// All 可以重复遍历，每次都从第一个用例开始。
func (r *Registry) All() iter.Seq[Case] {
	return func(yield func(Case) bool) {
		for _, c := range r.cases {
			if !yield(c) {
				return
			}
		}
	}
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cases))
	for _, c := range r.cases {
		names = append(names, c.Name)
	}
	return names
}

func (r *Registry) Lookup(name string) (Case, bool) {
	i, ok := r.index[name]
	if !ok {
		return Case{}, false
	}
	return r.cases[i], true
}

func (r *Registry) Len() int { return len(r.cases) }

// Filter 与 go test -bench 类似，返回名字匹配 pattern 的用例；pattern 为 nil 时返回全部。
func (r *Registry) Filter(pattern *regexp.Regexp) []Case {
	if pattern == nil {
		return r.List()
	}
	var out []Case
	for _, c := range r.cases {
		if pattern.MatchString(c.Name) {
			out = append(out, c)
		}
	}
	return out
}
