// perfbench 枚举注册表里的全部用例，逐个测量后输出结果表。
//
//	perfbench -f etc/perfbench.yaml --filter '^hash/' --trials 5
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/jessevdk/go-flags"
	"github.com/zeromicro/go-zero/core/logx"

	"perf-benchmarks/config"
	"perf-benchmarks/report"
	"perf-benchmarks/runner"
	"perf-benchmarks/suite"
)

type options struct {
	ConfigFile  string `short:"f" long:"config" description:"配置文件路径，不指定时使用默认配置"`
	Filter      string `long:"filter" description:"只运行名字匹配该正则的用例"`
	Trials      int    `long:"trials" description:"每个用例的测量轮数"`
	BenchTime   string `long:"benchtime" description:"每轮测量时长，如 1s 或 100x"`
	Format      string `long:"format" choice:"table" choice:"json" description:"输出格式"`
	List        bool   `long:"list" description:"只列出用例名"`
	Diagnostics bool   `long:"diagnostics" description:"启动 gops agent"`
}

var errCasesFailed = errors.New("some benchmark cases failed")

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	// 配置加载失败时 logx 还没 setup，也不能写到 stdout
	logx.SetWriter(logx.NewWriter(os.Stderr))
	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		logx.Errorf("perfbench: %v", err)
		logx.Close()
		os.Exit(1)
	}
	logx.Close()
}

func loadConfig(opts options) (config.Config, error) {
	var (
		c   config.Config
		err error
	)
	if opts.ConfigFile != "" {
		c, err = config.Load(opts.ConfigFile)
	} else {
		c, err = config.Default()
	}
	if err != nil {
		return c, err
	}
	if opts.Filter != "" {
		c.Filter = opts.Filter
	}
	if opts.Trials != 0 {
		c.Trials = opts.Trials
	}
	if opts.BenchTime != "" {
		c.BenchTime = opts.BenchTime
	}
	if opts.Format != "" {
		c.Format = opts.Format
	}
	if opts.Diagnostics {
		c.Diagnostics = true
	}
	return c, c.Validate()
}

// setupLog 在 console 模式下把日志改写到 logOut，stdout 只留给报告，--format json 的输出才能直接解析。
func setupLog(c logx.LogConf, logOut io.Writer) {
	logx.MustSetup(c)
	if c.Mode == "" || c.Mode == "console" {
		logx.SetWriter(logx.NewWriter(logOut))
	}
}

func run(opts options, out, logOut io.Writer) error {
	c, err := loadConfig(opts)
	if err != nil {
		return err
	}
	setupLog(c.Log, logOut)

	registry, err := suite.New()
	if err != nil {
		return err
	}

	if opts.List {
		for _, name := range registry.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	if c.Diagnostics {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		defer agent.Close()
	}

	if err := runner.SetBenchTime(c.BenchTime); err != nil {
		return err
	}
	filter, err := c.FilterRegexp()
	if err != nil {
		return err
	}
	cases := registry.Filter(filter)
	if len(cases) == 0 {
		return fmt.Errorf("no benchmark case matches %q", c.Filter)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logx.Infof("verifying %d benchmark cases", len(cases))
	if err := runner.Verify(ctx, cases, c.VerifyWorkers); err != nil {
		return err
	}

	results, err := runner.Run(ctx, cases, runner.Options{
		Trials: c.Trials,
		Warmup: c.Warmup,
	})
	if err != nil {
		return err
	}
	if err := report.Write(out, c.Format, results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Failed() {
			return errCasesFailed
		}
	}
	return nil
}
