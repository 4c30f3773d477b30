// Package config 加载 perfbench 的配置文件。
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type Config struct {
	Log logx.LogConf

	// Filter 是匹配用例名的正则，空串表示全部。
	Filter string `json:",optional"`
	// Trials 每个用例重复测量的轮数。
	Trials int `json:",default=3"`
	// BenchTime 直接传给 -test.benchtime，支持 1s、100x 两种写法。
	BenchTime string `json:",default=1s"`
	// Warmup 每个用例正式测量前不计时执行的次数。
	Warmup        int    `json:",default=1"`
	VerifyWorkers int    `json:",default=4"`
	Format        string `json:",default=table,options=table|json"`
	// Diagnostics 为 true 时启动 gops agent。
	Diagnostics bool `json:",optional"`
}

// Load 读取 yaml/json 配置文件并填充默认值。
func Load(path string) (Config, error) {
	var c Config
	if err := conf.Load(path, &c); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default 不读文件，只填充默认值。
func Default() (Config, error) {
	var c Config
	if err := conf.FillDefault(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: Trials must be >= 1, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: Warmup must be >= 0, got %d", ErrInvalidConfig, c.Warmup)
	}
	if c.VerifyWorkers < 1 {
		return fmt.Errorf("%w: VerifyWorkers must be >= 1, got %d", ErrInvalidConfig, c.VerifyWorkers)
	}
	if c.BenchTime == "" {
		return fmt.Errorf("%w: BenchTime is empty", ErrInvalidConfig)
	}
	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown Format %q", ErrInvalidConfig, c.Format)
	}
	if _, err := c.FilterRegexp(); err != nil {
		return err
	}
	return nil
}

// FilterRegexp 在 Filter 为空时返回 nil。
func (c Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: Filter: %v", ErrInvalidConfig, err)
	}
	return re, nil
}
