package performance

import (
	"bytes"
	"testing"

	"perf-benchmarks/benchcase"
)

/*
对比不同哈希算法对同一段短输入（"Some Text"）计算一次摘要的开销。

执行命令:

	go test -run '^$' -bench '^Benchmark(Compute|HMAC|Sum)' -benchtime=3s -count=5 -benchmem .

关注指标:
  - ns/op: 输入很短，耗时主要是实例初始化和最后一轮压缩
  - B/op、allocs/op: ComputeHash 每次都新建实例，Sum 系列走数组返回值，不经过接口

预期结论:
 1. MD5、SHA-1 最快，但已不安全，只能用于非安全场景（校验、去重）
 2. SHA-256 在支持 SHA 指令的 CPU 上往往比 SHA-512 更快，否则 SHA-512 在 64 位机器上更有优势
 3. SHA-384 与 SHA-512 内核相同，只是截断输出
 4. HMAC 大约是底层哈希的两倍开销（内外两次哈希），外加 key 预处理
*/

func benchmarkHash(b *testing.B, alg Algorithm) {
	b.ReportAllocs()
	for b.Loop() {
		ComputeHash(alg, Input)
	}
}

func benchmarkHMAC(b *testing.B, alg Algorithm) {
	b.ReportAllocs()
	for b.Loop() {
		ComputeHMAC(alg, HMACKey, Input)
	}
}

func BenchmarkComputeMD5(b *testing.B)        { benchmarkHash(b, MD5) }
func BenchmarkComputeSHA1(b *testing.B)       { benchmarkHash(b, SHA1) }
func BenchmarkComputeSHA256(b *testing.B)     { benchmarkHash(b, SHA256) }
func BenchmarkComputeSHA384(b *testing.B)     { benchmarkHash(b, SHA384) }
func BenchmarkComputeSHA512(b *testing.B)     { benchmarkHash(b, SHA512) }
func BenchmarkComputeRIPEMD160(b *testing.B)  { benchmarkHash(b, RIPEMD160) }
func BenchmarkComputeSHA3_256(b *testing.B)   { benchmarkHash(b, SHA3_256) }
func BenchmarkComputeBLAKE2b256(b *testing.B) { benchmarkHash(b, BLAKE2b256) }
func BenchmarkComputeBLAKE256(b *testing.B)   { benchmarkHash(b, BLAKE256) }
func BenchmarkComputeBLAKE3(b *testing.B)     { benchmarkHash(b, BLAKE3) }

func BenchmarkHMACMD5(b *testing.B)      { benchmarkHMAC(b, MD5) }
func BenchmarkHMACSHA1(b *testing.B)     { benchmarkHMAC(b, SHA1) }
func BenchmarkHMACSHA256(b *testing.B)   { benchmarkHMAC(b, SHA256) }
func BenchmarkHMACSHA384(b *testing.B)   { benchmarkHMAC(b, SHA384) }
func BenchmarkHMACSHA512(b *testing.B)   { benchmarkHMAC(b, SHA512) }
func BenchmarkHMACSHA3_256(b *testing.B) { benchmarkHMAC(b, SHA3_256) }

func BenchmarkSumMD5(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		MD5Sum(Input)
	}
}

func BenchmarkSumSHA256(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		SHA256Sum(Input)
	}
}

func TestComputeHash_DigestSize(t *testing.T) {
	want := map[string]int{
		"md5":         16,
		"sha1":        20,
		"sha256":      32,
		"sha384":      48,
		"sha512":      64,
		"ripemd160":   20,
		"sha3-256":    32,
		"blake2b-256": 32,
		"blake256":    32,
		"blake3":      32,
	}
	for _, alg := range HashAlgorithms {
		t.Run(alg.Name, func(t *testing.T) {
			sum := ComputeHash(alg, Input)
			if len(sum) != want[alg.Name] {
				t.Fatalf("digest length = %d, want %d", len(sum), want[alg.Name])
			}
			if len(sum) != alg.Size {
				t.Fatalf("digest length = %d, Algorithm.Size = %d", len(sum), alg.Size)
			}
		})
	}
}

func TestComputeHash_MatchesSumFastPath(t *testing.T) {
	md5Sum := MD5Sum(Input)
	if !bytes.Equal(ComputeHash(MD5, Input), md5Sum[:]) {
		t.Fatal("md5 mismatch between hash.Hash and md5.Sum")
	}
	shaSum := SHA256Sum(Input)
	if !bytes.Equal(ComputeHash(SHA256, Input), shaSum[:]) {
		t.Fatal("sha256 mismatch between hash.Hash and sha256.Sum256")
	}
}

func TestComputeHMAC(t *testing.T) {
	otherKey := []byte("fedcba9876543210fedcba9876543210")
	for _, alg := range HMACAlgorithms {
		t.Run(alg.Name, func(t *testing.T) {
			first := ComputeHMAC(alg, HMACKey, Input)
			second := ComputeHMAC(alg, HMACKey, Input)
			if !bytes.Equal(first, second) {
				t.Fatal("same key and message produced different MACs")
			}
			if bytes.Equal(first, ComputeHMAC(alg, otherKey, Input)) {
				t.Fatal("different keys produced the same MAC")
			}
			if len(first) != alg.Size {
				t.Fatalf("mac length = %d, want %d", len(first), alg.Size)
			}
			if bytes.Equal(first, ComputeHash(alg, Input)) {
				t.Fatal("hmac equals plain digest")
			}
		})
	}
}

func TestRegisterHashes(t *testing.T) {
	r := benchcase.New()
	if err := RegisterHashes(r); err != nil {
		t.Fatal(err)
	}
	if got, want := r.Len(), len(HashAlgorithms)+len(HMACAlgorithms); got != want {
		t.Fatalf("registered %d cases, want %d", got, want)
	}
	for c := range r.All() {
		if err := c.Op(); err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
	}
	if err := RegisterHashes(r); err == nil {
		t.Fatal("registering twice should fail")
	}
}
