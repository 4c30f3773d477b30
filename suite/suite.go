// Package suite 把各个 performance 包的用例按固定顺序注册到同一个注册表里。
package suite

import (
	"fmt"

	"perf-benchmarks/benchcase"
	hashbench "perf-benchmarks/hashing/performance"
	slicebench "perf-benchmarks/slice/performance"
	stringbench "perf-benchmarks/string-concat/performance"
)

// Registrar 向注册表追加一组用例。
type Registrar func(r *benchcase.Registry) error

// Default 决定报告里各组用例的先后顺序。
var Default = []Registrar{
	hashbench.RegisterHashes,
	hashbench.RegisterKDFs,
	slicebench.Register,
	stringbench.Register,
}

// New 用 Default 构建注册表，名字重复属于配置错误，直接返回。
func New() (*benchcase.Registry, error) {
	return Build(Default...)
}

func Build(registrars ...Registrar) (*benchcase.Registry, error) {
	r := benchcase.New()
	for i, register := range registrars {
		if err := register(r); err != nil {
			return nil, fmt.Errorf("registrar %d: %w", i, err)
		}
	}
	return r, nil
}
