package digest_test

import (
	"strings"
	"testing"

	"md5tap/internal/digest"
)

func TestSumMD5KnownVectors(t *testing.T) {
	vectors := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"abc", "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"message digest", "message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"alphabet", "abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	}
	for _, tc := range vectors {
		d, err := digest.Sum(digest.MD5, []byte(tc.input))
		if err != nil {
			t.Fatalf("%s: Sum returned error: %v", tc.name, err)
		}
		if got := d.Hex(); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
		if len(d.Hex()) != 32 {
			t.Fatalf("%s: md5 hex should be 32 chars, got %d", tc.name, len(d.Hex()))
		}
	}
}

func TestSumSHA256Empty(t *testing.T) {
	d, err := digest.Sum(digest.SHA256, nil)
	if err != nil {
		t.Fatalf("Sum returned error: %v", err)
	}
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if d.Hex() != want {
		t.Fatalf("got %s want %s", d.Hex(), want)
	}
}

func TestHexIsLowercase(t *testing.T) {
	d, err := digest.Sum(digest.MD5, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	if err != nil {
		t.Fatalf("Sum returned error: %v", err)
	}
	if d.Hex() != strings.ToLower(d.Hex()) {
		t.Fatalf("hex digest not lowercase: %s", d.Hex())
	}
}

func TestParseAlgorithm(t *testing.T) {
	if alg, err := digest.ParseAlgorithm(""); err != nil || alg != digest.MD5 {
		t.Fatalf("empty name should default to md5, got %v %v", alg, err)
	}
	if alg, err := digest.ParseAlgorithm(" SHA256 "); err != nil || alg != digest.SHA256 {
		t.Fatalf("sha256 should parse case-insensitively, got %v %v", alg, err)
	}
	if _, err := digest.ParseAlgorithm("crc32"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestParseRoundTrip(t *testing.T) {
	original, err := digest.Sum(digest.MD5, []byte("round trip"))
	if err != nil {
		t.Fatalf("Sum returned error: %v", err)
	}
	parsed, err := digest.Parse("md5", original.Hex())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !parsed.Equal(original) {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, original)
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	if _, err := digest.Parse("md5", "abcd"); err == nil {
		t.Fatal("expected error for short digest")
	}
	if _, err := digest.Parse("md5", strings.Repeat("zz", 16)); err == nil {
		t.Fatal("expected error for non-hex digest")
	}
}

func TestEqualDistinguishesAlgorithms(t *testing.T) {
	a, _ := digest.Sum(digest.MD5, []byte("same"))
	b, _ := digest.Sum(digest.SHA256, []byte("same"))
	if a.Equal(b) {
		t.Fatal("digests of different algorithms must not be equal")
	}
}

func TestBytesReturnsCopy(t *testing.T) {
	d, _ := digest.Sum(digest.MD5, []byte("copy"))
	raw := d.Bytes()
	raw[0] ^= 0xFF
	if d.Bytes()[0] == raw[0] {
		t.Fatal("mutating Bytes() result leaked into the digest")
	}
}
