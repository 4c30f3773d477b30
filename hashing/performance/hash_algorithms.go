package performance

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec // 基准测试对比用
	"crypto/sha1" //nolint:gosec // 基准测试对比用
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/crypto/ripemd160"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"perf-benchmarks/benchcase"
)

/*
对比常见哈希算法计算一次摘要的开销。

结论：越快的算法通常越不安全，它们对输入做的混合运算更少。除非有兼容性要求，
一般优先选择 SHA-2 家族（SHA-256/SHA-512）。SHA-256 按 32 位字计算，SHA-512 按
64 位字计算，所以在 64 位机器上 SHA-512 处理大块数据时并不比 SHA-256 慢多少，
但输入很短时两者都被固定开销主导。

每次调用都新建一个 hash.Hash，和"每次测量获取一个实例、用完即丢"的写法保持一致，
这样 allocs/op 里也包含了实例本身的分配。
*/

// Input 是所有哈希用例共用的输入。
var Input = []byte("Some Text")

// HMACKey 固定 32 字节，足够覆盖各算法的推荐 key 长度。
var HMACKey = []byte("0123456789abcdef0123456789abcdef")

// Algorithm 描述一个按名字选用的哈希算法。
type Algorithm struct {
	Name string
	Size int
	New  func() hash.Hash
}

func newBlake2b256() hash.Hash {
	// key 为 nil 时不会返回错误
	h, _ := blake2b.New256(nil)
	return h
}

func newBlake3() hash.Hash {
	return blake3.New(32, nil)
}

var (
	MD5        = Algorithm{Name: "md5", Size: md5.Size, New: md5.New}
	SHA1       = Algorithm{Name: "sha1", Size: sha1.Size, New: sha1.New}
	SHA256     = Algorithm{Name: "sha256", Size: sha256.Size, New: sha256.New}
	SHA384     = Algorithm{Name: "sha384", Size: sha512.Size384, New: sha512.New384}
	SHA512     = Algorithm{Name: "sha512", Size: sha512.Size, New: sha512.New}
	RIPEMD160  = Algorithm{Name: "ripemd160", Size: ripemd160.Size, New: ripemd160.New}
	SHA3_256   = Algorithm{Name: "sha3-256", Size: 32, New: sha3.New256}
	BLAKE2b256 = Algorithm{Name: "blake2b-256", Size: blake2b.Size256, New: newBlake2b256}
	BLAKE256   = Algorithm{Name: "blake256", Size: blake256.Size, New: blake256.New}
	BLAKE3     = Algorithm{Name: "blake3", Size: 32, New: newBlake3}
)

// HashAlgorithms 决定 hash/ 用例的注册顺序。
var HashAlgorithms = []Algorithm{
	MD5, SHA1, SHA256, SHA384, SHA512, RIPEMD160, SHA3_256, BLAKE2b256, BLAKE256, BLAKE3,
}

// HMACAlgorithms 决定 hmac/ 用例的注册顺序。
var HMACAlgorithms = []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512, SHA3_256}

// ComputeHash 新建一个哈希实例并计算 data 的摘要。
func ComputeHash(alg Algorithm, data []byte) []byte {
	h := alg.New()
	h.Write(data)
	return h.Sum(nil)
}

// ComputeHMAC 用 key 计算 data 的 HMAC。
func ComputeHMAC(alg Algorithm, key, data []byte) []byte {
	mac := hmac.New(alg.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// MD5Sum 走的是数组返回值的快速路径，不经过 hash.Hash 接口，用来对照 ComputeHash 的接口开销。
func MD5Sum(data []byte) [md5.Size]byte {
	return md5.Sum(data) //nolint:gosec // 基准测试对比用
}

func SHA256Sum(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// RegisterHashes 注册 hash/<name> 和 hmac/<name> 用例。
func RegisterHashes(r *benchcase.Registry) error {
	for _, alg := range HashAlgorithms {
		if err := r.Register("hash/"+alg.Name, func() error {
			ComputeHash(alg, Input)
			return nil
		}); err != nil {
			return err
		}
	}
	for _, alg := range HMACAlgorithms {
		if err := r.Register("hmac/"+alg.Name, func() error {
			ComputeHMAC(alg, HMACKey, Input)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
