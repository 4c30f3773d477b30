// Package runner 是自带的基准测试驱动：先校验，再预热，最后用 testing.Benchmark 多轮测量。
package runner

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"

	"perf-benchmarks/benchcase"
)

type Options struct {
	Trials int
	Warmup int
}

// Trial 是一次 testing.Benchmark 的结果。
type Trial struct {
	N           int   `json:"n"`
	NsPerOp     int64 `json:"ns_per_op"`
	BytesPerOp  int64 `json:"bytes_per_op"`
	AllocsPerOp int64 `json:"allocs_per_op"`
}

// Result 中 Mean、Median、StdDev 的单位都是 ns/op。
type Result struct {
	Name        string  `json:"name"`
	Trials      []Trial `json:"trials,omitempty"`
	Mean        float64 `json:"mean_ns"`
	Median      float64 `json:"median_ns"`
	StdDev      float64 `json:"stddev_ns"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
	Err         error   `json:"-"`
}

func (r Result) Failed() bool { return r.Err != nil }

var initOnce sync.Once

// SetBenchTime 设置 -test.benchtime，格式与 go test 相同，例如 1s、100x。
func SetBenchTime(d string) error {
	initOnce.Do(testing.Init)
	if err := flag.Set("test.benchtime", d); err != nil {
		return fmt.Errorf("benchtime %q: %w", d, err)
	}
	return nil
}

// Verify 在测量之前把每个用例执行一次，任一用例出错就返回，不进入测量。
func Verify(ctx context.Context, cases []benchcase.Case, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.Op(); err != nil {
				return fmt.Errorf("verify %s: %w", c.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Run 按顺序测量每个用例。单个用例失败只记录在 Result.Err 中，不影响其他用例；
// ctx 只在用例之间检查，正在执行的操作不会被打断。
func Run(ctx context.Context, cases []benchcase.Case, opts Options) ([]Result, error) {
	trials := max(opts.Trials, 1)
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := measure(ctx, c, trials, opts.Warmup)
		if err != nil {
			return results, err
		}
		if res.Failed() {
			logx.Errorw("benchmark case failed", logx.Field("case", c.Name), logx.Field("error", res.Err.Error()))
		} else {
			logx.Infow("benchmark case done",
				logx.Field("case", c.Name),
				logx.Field("mean_ns", res.Mean),
				logx.Field("allocs_per_op", res.AllocsPerOp))
		}
		results = append(results, res)
	}
	return results, nil
}

func measure(ctx context.Context, c benchcase.Case, trials, warmup int) (Result, error) {
	res := Result{Name: c.Name}
	for i := 0; i < warmup; i++ {
		if err := c.Op(); err != nil {
			res.Err = fmt.Errorf("warmup %s: %w", c.Name, err)
			return res, nil
		}
	}
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		trial, err := runTrial(c)
		if err != nil {
			res.Err = err
			return res, nil
		}
		res.Trials = append(res.Trials, trial)
	}
	summarize(&res)
	return res, nil
}

func runTrial(c benchcase.Case) (Trial, error) {
	var opErr error
	br := testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := c.Op(); err != nil {
				opErr = err
				b.FailNow()
			}
		}
	})
	if opErr != nil {
		return Trial{}, fmt.Errorf("run %s: %w", c.Name, opErr)
	}
	if br.N == 0 {
		return Trial{}, fmt.Errorf("run %s: benchmark did not complete", c.Name)
	}
	return Trial{
		N:           br.N,
		NsPerOp:     br.NsPerOp(),
		BytesPerOp:  br.AllocedBytesPerOp(),
		AllocsPerOp: br.AllocsPerOp(),
	}, nil
}

// summarize 分配数取各轮最大值，标准差用样本标准差，只有一轮时为 0。
func summarize(res *Result) {
	data := make(stats.Float64Data, 0, len(res.Trials))
	for _, t := range res.Trials {
		data = append(data, float64(t.NsPerOp))
		res.BytesPerOp = max(res.BytesPerOp, t.BytesPerOp)
		res.AllocsPerOp = max(res.AllocsPerOp, t.AllocsPerOp)
	}
	res.Mean, _ = stats.Mean(data)
	res.Median, _ = stats.Median(data)
	if len(data) > 1 {
		res.StdDev, _ = stats.StandardDeviationSample(data)
	}
}
