package performance

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"perf-benchmarks/benchcase"
)

/*
密码哈希（memory-hard KDF）刻意做得"慢"：单次 MD5/SHA256 只要几百纳秒，
而 argon2id(64MiB)、scrypt(N=32768)、bcrypt(cost=10) 都在几十到上百毫秒量级，
而且 argon2/scrypt 每次调用都要分配与 memory 参数相当的内存。

这些用例的耗时与内存占用都是预期行为，调大 memory 参数可能直接耗尽内存。
*/

var ErrInvalidKDFParams = errors.New("invalid kdf parameters")

var (
	Password = []byte("P@ssw0rd123!")
	Salt     = []byte("0123456789abcdef")
)

// Argon2Params 中 Memory 的单位是 KiB。
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

func (p Argon2Params) validate() error {
	if p.Time < 1 || p.Threads < 1 || p.KeyLen < 1 {
		return fmt.Errorf("argon2 time=%d threads=%d keyLen=%d: %w", p.Time, p.Threads, p.KeyLen, ErrInvalidKDFParams)
	}
	return nil
}

type ScryptParams struct {
	N, R, P int
	KeyLen  int
}

var (
	Argon2iParams  = Argon2Params{Time: 3, Memory: 32 * 1024, Threads: 4, KeyLen: 32}
	Argon2idParams = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}
	DefaultScrypt  = ScryptParams{N: 32768, R: 8, P: 1, KeyLen: 32}
)

const (
	BcryptCost       = bcrypt.DefaultCost
	PBKDF2Iterations = 10000
	PBKDF2KeyLen     = 32
)

// Argon2i 参数非法时 argon2 包会直接 panic，这里提前校验后返回错误。
func Argon2i(p Argon2Params, password, salt []byte) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return argon2.Key(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

func Argon2id(p Argon2Params, password, salt []byte) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

// Bcrypt 返回 60 字节的编码结果，盐由 bcrypt 内部随机生成。
// cost 低于 MinCost 时 bcrypt 会悄悄换成 DefaultCost，这里改为报错。
func Bcrypt(password []byte, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost {
		return nil, bcrypt.InvalidCostError(cost)
	}
	return bcrypt.GenerateFromPassword(password, cost)
}

func Scrypt(p ScryptParams, password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, p.N, p.R, p.P, p.KeyLen)
}

func PBKDF2SHA256(password, salt []byte, iter, keyLen int) ([]byte, error) {
	if iter < 1 || keyLen < 1 {
		return nil, fmt.Errorf("pbkdf2 iter=%d keyLen=%d: %w", iter, keyLen, ErrInvalidKDFParams)
	}
	return pbkdf2.Key(password, salt, iter, keyLen, sha256.New), nil
}

func discard(_ []byte, err error) error { return err }

// RegisterKDFs 注册 kdf/ 用例。
func RegisterKDFs(r *benchcase.Registry) error {
	cases := []struct {
		name string
		op   benchcase.Op
	}{
		{"kdf/argon2i", func() error { return discard(Argon2i(Argon2iParams, Password, Salt)) }},
		{"kdf/argon2id", func() error { return discard(Argon2id(Argon2idParams, Password, Salt)) }},
		{"kdf/bcrypt", func() error { return discard(Bcrypt(Password, BcryptCost)) }},
		{"kdf/scrypt", func() error { return discard(Scrypt(DefaultScrypt, Password, Salt)) }},
		{"kdf/pbkdf2-sha256", func() error {
			return discard(PBKDF2SHA256(Password, Salt, PBKDF2Iterations, PBKDF2KeyLen))
		}},
	}
	for _, c := range cases {
		if err := r.Register(c.name, c.op); err != nil {
			return err
		}
	}
	return nil
}
